package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Judge  *Judge
	Shodo  *Shodo
	Log    *Log
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

type Judge struct {
	Llm             *LLM         `json:"llm"`
	Schema          string       `json:"schema"`
	TargetHooks     int32        `json:"target_hooks"`
	SuggestionLimit int32        `json:"suggestion_limit"`
	Concurrency     *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type Shodo struct {
	BaseUrl        string `json:"base_url"`
	Token          string `json:"token"`
	TimeoutSec     int32  `json:"timeout_sec"`
	MaxWaitMs      int32  `json:"max_wait_ms"`
	PollIntervalMs int32  `json:"poll_interval_ms"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
