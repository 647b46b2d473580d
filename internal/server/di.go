package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/press_radar/internal/biz"
	"github.com/iWorld-y/press_radar/internal/data"
	"github.com/iWorld-y/press_radar/internal/service"
)

// ProviderSet wires the whole service graph.
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewJudgeClient,
	NewShodoClient,

	// Data providers
	data.NewData,
	data.NewAnalysisRepo,

	// Usecase providers
	biz.NewAnalyzeUsecase,
	biz.NewProofreadUsecase,

	// Service providers
	service.NewPressService,
)
