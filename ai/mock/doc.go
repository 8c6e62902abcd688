// Package mock provides test doubles for the ai package interfaces.
//
// Each mock supports custom behavior injection through function fields and
// tracks call counts for assertions:
//
//	provider := mock.NewMockProvider()
//	provider.GetMockAnalyzer().AnalyzeIntentFunc = func(ctx context.Context, query string) (*core.QueryIntent, error) {
//	    return nil, errors.New("service down")
//	}
//
// The default behaviors are deterministic, which keeps pipeline tests
// reproducible without a running model server.
package mock
