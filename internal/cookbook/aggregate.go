package cookbook

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"enwiro/internal/logging"
)

// Collect gathers recipes from every cookbook into one newline-terminated
// listing, ordered by (priority ascending, cookbook name ascending). A
// cookbook that fails is skipped with a warning; its recipes are simply
// absent from the result.
func Collect(ctx context.Context, cookbooks []Cookbook, logger *slog.Logger) string {
	logger = logging.NewComponentLogger(logger, "aggregator")

	sorted := make([]Cookbook, len(cookbooks))
	copy(sorted, cookbooks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority() != sorted[j].Priority() {
			return sorted[i].Priority() < sorted[j].Priority()
		}
		return sorted[i].Name() < sorted[j].Name()
	})

	var builder strings.Builder
	for _, cb := range sorted {
		recipes, err := cb.ListRecipes(ctx)
		if err != nil {
			logger.Warn("skipping cookbook",
				logging.String("cookbook", cb.Name()),
				logging.Error(err))
			continue
		}
		for _, recipe := range recipes {
			if recipe.Name == "" {
				continue
			}
			builder.WriteString(FormatLine(cb.Name(), recipe))
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}
