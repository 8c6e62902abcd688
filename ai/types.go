package ai

// IntentTypeNames defines the valid wire names for query intent types.
// These are used by intent analyzers to classify what a user is trying
// to achieve.
var IntentTypeNames = []string{
	"learn",
	"solve",
	"discover",
	"manage",
	"entertain",
}
