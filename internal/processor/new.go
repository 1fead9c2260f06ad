package processor

import (
	"studyflow/internal/assembler"
	"studyflow/internal/config"
	"studyflow/internal/logger"
	"studyflow/internal/segmenter"
	"studyflow/internal/stage"
	"studyflow/internal/state"
	"studyflow/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	segmenter  segmenter.Segmenter
	summarizer summarizer.Summarizer
	assembler  assembler.Assembler
	store      state.Store
	logger     logger.Logger
}

// New creates a Processor wired to the given pipeline components.
func New(
	cfg *config.Config,
	seg segmenter.Segmenter,
	summ summarizer.Summarizer,
	asm assembler.Assembler,
	store state.Store,
	log logger.Logger,
) Processor {
	return &implProcessor{
		cfg:        cfg,
		segmenter:  seg,
		summarizer: summ,
		assembler:  asm,
		store:      store,
		logger:     log,
	}
}

func (p *implProcessor) pricing() stage.Pricing {
	return stage.Pricing{
		InputPer1K:  p.cfg.Generation.InputPricePer1K,
		OutputPer1K: p.cfg.Generation.OutputPricePer1K,
	}
}
