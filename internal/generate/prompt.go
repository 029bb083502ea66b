package generate

const systemPrompt = "You are an expert IT support specialist writing internal help guides " +
	"for a busy hotel/company IT team. Create a professional, step-by-step guide in " +
	"clear, concise language. Use numbered steps. Include a short overview, " +
	"prerequisites, and a brief troubleshooting section. Keep it practical and " +
	"actionable for staff."

// buildUserPrompt keeps the title separate from the instructions so a
// title can't rewrite them.
func buildUserPrompt(title string) string {
	return "Title: " + title
}
