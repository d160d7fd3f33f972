package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists the elements that carry text in the resume templates.
const blockSelector = "h1, h2, p, div"

// PlainText converts rendered resume HTML into plain text, one block per line,
// suitable for pasting into ATS text boxes. Skill chips are joined with ", ".
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse rendered HTML", Cause: err}
	}

	doc.Find("head, style, script").Remove()

	var lines []string
	doc.Find("body").Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if chips := s.ChildrenFiltered(".chip"); chips.Length() > 0 {
			lines = append(lines, strings.Join(chips.Map(func(_ int, c *goquery.Selection) string {
				return strings.TrimSpace(c.Text())
			}), skillsSeparator))
			return
		}
		// Only leaf blocks; containers are covered by their children.
		if s.ChildrenFiltered(blockSelector).Length() > 0 {
			return
		}
		for _, line := range strings.Split(s.Text(), "\n") {
			if line = strings.Join(strings.Fields(line), " "); line != "" {
				lines = append(lines, line)
			}
		}
	})

	return strings.Join(lines, "\n"), nil
}
