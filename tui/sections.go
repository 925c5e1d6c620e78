package tui

import "snapfix/types"

// section is one analysis text the detail pane can show
type section struct {
	Title string
	Text  func(types.AnalysisRecord) string
}

// sections lists the analysis texts in display order; the first is the default
var sections = []section{
	{"Final solution", func(r types.AnalysisRecord) string { return r.FinalSolution }},
	{"AI result", func(r types.AnalysisRecord) string { return r.AIResult }},
	{"Vision analysis", func(r types.AnalysisRecord) string { return r.VisionAnalysis }},
	{"Text analysis", func(r types.AnalysisRecord) string { return r.TextAnalysis }},
	{"Engineered prompt", func(r types.AnalysisRecord) string { return r.EngineeredPrompt }},
}
