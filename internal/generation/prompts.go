package generation

import "fmt"

func userResponsePrompt(rating int, review string) string {
	return fmt.Sprintf(
		"A customer left a %d out of 5 rating with this review:\n%q\n\n"+
			"Write one short paragraph replying to the customer. Be warm and empathetic, and do not make promises.",
		rating, review,
	)
}

func summaryPrompt(review string) string {
	return fmt.Sprintf("Summarize this customer review in a single short sentence:\n%q", review)
}

func actionsPrompt(rating int, review string) string {
	return fmt.Sprintf(
		"Rating: %d/5\nReview: %q\n\n"+
			"List exactly three short internal action items for the business, one per line, each starting with \"- \".",
		rating, review,
	)
}
