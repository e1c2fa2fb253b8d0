// Package compose turns a topic into an ordered sequence of article
// sections using fixed prose templates. It is pure: no I/O, deterministic
// for identical inputs.
package compose

import (
	"fmt"
	"strings"

	"github.com/sakmpar/newsforge/internal/models"
)

// researchIntroLimit caps how much of the research extract is embedded in
// the introduction.
const researchIntroLimit = 200

// Sections builds the full six-section article structure. The sequence
// always begins with Introduction and ends with Conclusion.
func Sections(title, description, research string) []models.ContentSection {
	lower := strings.ToLower(title)

	intro := fmt.Sprintf("In today's rapidly evolving world, %s has become increasingly important. ", lower)
	if description != "" {
		intro += description + " "
	}
	if research != "" {
		tail := research
		if runes := []rune(research); len(runes) > researchIntroLimit {
			tail = string(runes[:researchIntroLimit]) + "..."
		}
		intro += "\n\n" + tail
	}

	conclusion := fmt.Sprintf("In conclusion, %s represents a significant area of interest and development. ", lower)
	conclusion += "Understanding its various aspects can help individuals and organizations make informed decisions. "
	conclusion += "As we move forward, staying updated with the latest developments in this field will be crucial for success."

	return []models.ContentSection{
		{Heading: "Introduction", Body: intro},
		{Heading: "Key Points", Body: keyPoints(title, research)},
		{Heading: "Important Considerations", Body: considerations(title)},
		{Heading: "Practical Applications", Body: applications(title)},
		{Heading: "Future Outlook", Body: futureOutlook(title)},
		{Heading: "Conclusion", Body: conclusion},
	}
}

// BasicSections is the four-section fallback used when research fails.
func BasicSections(title, description string) []models.ContentSection {
	lower := strings.ToLower(title)
	intro := fmt.Sprintf("%s is an important topic that deserves attention and understanding. %s", title, description)
	return []models.ContentSection{
		{Heading: "Introduction", Body: intro},
		{Heading: "Overview", Body: fmt.Sprintf("This article provides insights into %s and its various aspects.", lower)},
		{Heading: "Key Benefits", Body: fmt.Sprintf("Understanding %s can provide valuable benefits and insights.", lower)},
		{Heading: "Conclusion", Body: fmt.Sprintf("In summary, %s represents an area of significant interest and potential.", lower)},
	}
}

func keyPoints(title, research string) string {
	lower := strings.ToLower(title)
	points := []string{
		fmt.Sprintf("Understanding the fundamentals of %s is essential for anyone interested in this topic.", lower),
		fmt.Sprintf("Recent developments in %s have shown promising results and potential for growth.", lower),
		fmt.Sprintf("The impact of %s extends beyond immediate applications to long-term implications.", lower),
	}

	if research != "" {
		// Period-delimited split; fragile on abbreviations, accepted.
		sentences := strings.Split(research, ". ")
		if len(sentences) > 3 {
			points = append(points, sentences[1]+".")
		}
	}

	return bullets(points)
}

func considerations(title string) string {
	lower := strings.ToLower(title)
	return bullets([]string{
		fmt.Sprintf("When examining %s, it's important to consider multiple perspectives and viewpoints.", lower),
		fmt.Sprintf("The complexity of %s requires careful analysis and understanding of underlying factors.", lower),
		fmt.Sprintf("Stakeholders should evaluate both benefits and potential challenges associated with %s.", lower),
	})
}

func applications(title string) string {
	lower := strings.ToLower(title)
	return bullets([]string{
		fmt.Sprintf("Real-world applications of %s can be found across various industries and sectors.", lower),
		fmt.Sprintf("Organizations are increasingly adopting strategies related to %s to improve their operations.", lower),
		fmt.Sprintf("Individual practitioners can benefit from implementing best practices associated with %s.", lower),
	})
}

func futureOutlook(title string) string {
	lower := strings.ToLower(title)
	outlook := fmt.Sprintf("The future of %s looks promising with continued research and development. ", lower)
	outlook += fmt.Sprintf("Emerging trends suggest that %s will play an increasingly important role in shaping future developments. ", lower)
	outlook += fmt.Sprintf("Investment in %s is expected to grow as more organizations recognize its potential value and impact.", lower)
	return outlook
}

func bullets(points []string) string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = "• " + p
	}
	return strings.Join(out, "\n\n")
}
