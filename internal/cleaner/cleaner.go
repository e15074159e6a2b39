// Package cleaner strips page numbers, boilerplate tokens, and probable
// header/footer lines from extracted page text. The strip is lossy by design
// and can remove genuine content on short pages, which is why the line margin
// is a configuration value rather than a hidden constant.
package cleaner

import (
	"regexp"
	"strings"

	"rfp-assist/internal/models"
)

var (
	pageOfPagesRe = regexp.MustCompile(models.PageOfPagesRegex)
	pageLabelRe   = regexp.MustCompile(models.PageLabelRegex)

	boilerplateRes = func() []*regexp.Regexp {
		res := make([]*regexp.Regexp, len(models.BoilerplateWords))
		for i, w := range models.BoilerplateWords {
			res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(w))
		}
		return res
	}()
)

type Cleaner struct {
	lineMargin int
}

func New(lineMargin int) *Cleaner {
	if lineMargin < 0 {
		lineMargin = 0
	}
	return &Cleaner{lineMargin: lineMargin}
}

// Clean filters every extracted page and joins them into the document text.
// The header/footer margin strip runs here, exactly once per page; Filter is
// safe to re-apply to already-cleaned text without shrinking it further.
func (c *Cleaner) Clean(pages []string) string {
	cleaned := make([]string, len(pages))
	for i, page := range pages {
		cleaned[i] = c.StripMargins(c.Filter(page))
	}
	return strings.Join(cleaned, "\n")
}

// Filter deletes page-number patterns and boilerplate words. Idempotent.
func (c *Cleaner) Filter(text string) string {
	text = pageOfPagesRe.ReplaceAllString(text, "")
	text = pageLabelRe.ReplaceAllString(text, "")
	for _, re := range boilerplateRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// StripMargins drops the first and last lineMargin lines of a page as a
// header/footer heuristic. Pages with too few lines are left untouched.
func (c *Cleaner) StripMargins(text string) string {
	if c.lineMargin == 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= 2*c.lineMargin {
		return text
	}
	return strings.Join(lines[c.lineMargin:len(lines)-c.lineMargin], "\n")
}
