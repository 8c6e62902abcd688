// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package recommend implements the hybrid retrieval and ranking pipeline.
//
// A query flows through six stages:
//
//	query -> intent analysis -> {lexical, semantic} retrieval (parallel)
//	      -> reciprocal rank fusion -> LLM re-ranking -> assembly
//
// Intent analysis interprets the query with the language service and falls
// back to a deterministic heuristic when the service fails. The lexical
// path scores precomputed TF-IDF keyword weights against the intent terms;
// the semantic path embeds the canonical query text and ranks by cosine
// similarity with an intent-relevance boost. The two ranked lists are
// merged with reciprocal rank fusion (the paths score on incomparable
// scales, so ranks are fused instead of raw scores), the fused top
// candidates are scored by the language service in bounded-concurrency
// batches, and the assembler deduplicates, applies category exclusions,
// and assigns dense ranks.
//
// Every external dependency degrades independently: a failed intent call
// uses the heuristic, a failed embedding call drops the semantic path, and
// a failed scoring batch keeps its candidates at their fusion scores. The
// only fatal error is an unreachable catalog (ErrCorpusUnavailable).
//
// # Usage
//
//	rec, err := recommend.NewRecommender(catalog, provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rec.Release()
//
//	results, err := rec.Search(ctx, "apps to help me relax and sleep", 10, nil)
package recommend
