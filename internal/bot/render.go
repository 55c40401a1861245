package bot

import (
	"fmt"
	"strings"

	"calorie-tracker-bot/internal/features/diary/models"
	"calorie-tracker-bot/internal/features/diary/service"
)

const (
	msgStart = "Hi! Send a photo of a dish (optionally with a caption describing it) " +
		"and I will estimate its nutrition. Send /done to add the estimate to your diary."
	msgGoalUsage     = "⚠ Please provide a number, e.g.: /setgoal 1800"
	msgEatUsage      = "⚠ Wrong format. Use: /eat <dish name> <calories>"
	msgNoPending     = "⚠ No saved dish. Send a photo first."
	msgDishNotFound  = "❌ Could not recognize a dish."
	msgOracleError   = "❌ Failed to process the image. Please try again later."
	msgInternalError = "❌ Something went wrong. Please try again later."
	msgReset         = "📭 Your stats for today have been reset!"
)

func renderGoal(goal int) string {
	return fmt.Sprintf("🎯 Your new goal: %d kcal per day!", goal)
}

func renderEstimate(c *models.PendingCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽 *Dish*: %s\n", c.Name)
	if c.WeightGrams != nil {
		fmt.Fprintf(&b, "🍏 *Weight*: %.0f g\n", *c.WeightGrams)
	}
	fmt.Fprintf(&b, "🔥 *Calories*: %d kcal\n", c.Calories)
	fmt.Fprintf(&b, "💪 *Protein*: %.1f g\n", c.ProteinGrams)
	fmt.Fprintf(&b, "🧈 *Fat*: %.1f g\n", c.FatGrams)
	fmt.Fprintf(&b, "🍞 *Carbs*: %.1f g\n", c.CarbsGrams)
	if c.CaloriesPer100 != nil {
		fmt.Fprintf(&b, "⚖ *Calories per 100 g*: %.0f kcal\n", *c.CaloriesPer100)
	}
	b.WriteString("✅ If this looks right, send /done to add it to the diary.")
	return b.String()
}

func renderCommit(header string, r *service.CommitResult) string {
	return fmt.Sprintf(
		"%s\n\n"+
			"🍽 *Name*: %s\n"+
			"🔥 *Calories*: %d kcal\n\n"+
			"📊 *Today so far:*\n"+
			"✅ *Consumed*: %d kcal\n"+
			"🔻 *Remaining*: %d kcal",
		header, r.Name, r.Calories, r.Stats.Consumed, r.Stats.Remaining)
}

func renderStats(stats *models.DailyStats) string {
	meals := "📭 No records"
	if len(stats.Meals) > 0 {
		lines := make([]string, 0, len(stats.Meals))
		for _, m := range stats.Meals {
			lines = append(lines, fmt.Sprintf("🍽 %s — %d kcal", m.Name, m.Calories))
		}
		meals = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(
		"📊 *Stats for today:*\n"+
			"✅ Consumed: %d kcal\n"+
			"🔻 Remaining: %d kcal\n\n"+
			"🍽 Dishes eaten:\n%s",
		stats.Consumed, stats.Remaining, meals)
}
