package llm

import (
	"context"
	"fmt"
	"strings"
)

// SelectModel walks the candidate identifiers in order and returns the first
// one the probe reports as available. Selection is a pure function of the
// candidate list and the probe; it happens once per summarization and is
// independent of later request failures.
func SelectModel(ctx context.Context, candidates []string, available func(context.Context, string) bool) (string, error) {
	for _, model := range candidates {
		if available(ctx, model) {
			return model, nil
		}
	}
	return "", fmt.Errorf("no available model among [%s]", strings.Join(candidates, ", "))
}
