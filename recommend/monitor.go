package recommend

import (
	"github.com/poiesic/appscout/core"
)

// QueryMonitor provides hooks to observe the recommendation pipeline.
// Implement this interface to track intermediate steps and results.
type QueryMonitor interface {
	Start(query string)
	AfterIntentAnalysis(intent *core.QueryIntent, usedFallback bool)
	AfterLexicalRetrieval(candidates []*core.CandidateResult)
	AfterSemanticRetrieval(candidates []*core.CandidateResult)
	AfterFusion(fused []*core.FusedResult)
	AfterRerank(results []*core.RankedResult)
	Finish(results []*core.RankedResult)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                    {}
func (n *noopMonitor) AfterIntentAnalysis(_ *core.QueryIntent, _ bool)   {}
func (n *noopMonitor) AfterLexicalRetrieval(_ []*core.CandidateResult)   {}
func (n *noopMonitor) AfterSemanticRetrieval(_ []*core.CandidateResult)  {}
func (n *noopMonitor) AfterFusion(_ []*core.FusedResult)                 {}
func (n *noopMonitor) AfterRerank(_ []*core.RankedResult)                {}
func (n *noopMonitor) Finish(_ []*core.RankedResult)                     {}
