package goquery

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/courseaudit/vast"
)

// altTextMaxLength is the longest alt text considered usable by a screen
// reader before it should move into surrounding copy.
const altTextMaxLength = 120

// placeholderAltTerms are alt texts that describe nothing.
var placeholderAltTerms = []string{"nbsp", " ", "spacer", "image", "img", "photo", "picture", "graphic"}

// deprecatedTags are presentational elements that assistive technology
// handles poorly.
var deprecatedTags = []string{"basefont", "font", "blink", "marquee"}

// Ensure Checker implements vast.AccessibilityChecker at compile time.
var _ vast.AccessibilityChecker = (*Checker)(nil)

// Checker runs the fixed accessibility rule battery against one HTML
// document. Rules are independent and share no state across documents.
type Checker struct{}

// NewChecker creates a Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check parses the document once and evaluates every rule, returning one
// finding per rule (the deprecated-tag rule yields one finding per tag).
func (c *Checker) Check(html, location string) ([]vast.Finding, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, vast.Errorf(vast.EINVALID, "failed to parse HTML: %v", err)
	}

	var findings []vast.Finding
	add := func(test string, issues []string, detailLimit int) {
		findings = append(findings, finding(test, location, issues, detailLimit))
	}

	add("imgAltIsDifferent", imgAltIsDifferent(doc), 3)
	add("imgAltIsTooLong", imgAltIsTooLong(doc), 3)
	add("imgAltNotPlaceHolder", imgAltNotPlaceHolder(doc), 3)
	add("imgAltNotEmptyInAnchor", imgAltNotEmptyInAnchor(doc), 3)
	add("tableDataShouldHaveTh", tableDataShouldHaveTh(doc), 0)
	add("tableThShouldHaveScope", tableThShouldHaveScope(doc), 3)
	add("objectMustContainText", objectMustContainText(doc), 0)
	add("embedHasAssociatedNoEmbed", embedHasAssociatedNoEmbed(doc), 3)
	add("aMustContainText", aMustContainText(doc), 3)
	findings = append(findings, deprecatedTagFindings(doc, location)...)
	add("headersHaveText", headersHaveText(doc), 0)

	return findings, nil
}

// finding assembles one rule result. detailLimit caps how many issues are
// echoed into the details column; 0 means all.
func finding(test, location string, issues []string, detailLimit int) vast.Finding {
	status := vast.FindingPass
	details := ""
	if len(issues) > 0 {
		status = vast.FindingFail
		limited := issues
		if detailLimit > 0 && len(limited) > detailLimit {
			limited = limited[:detailLimit]
		}
		details = strings.Join(limited, "; ")
	}
	return vast.Finding{
		Test:     test,
		Status:   status,
		Count:    len(issues),
		Location: location,
		Details:  details,
	}
}

// imgAltIsDifferent flags images whose alt text merely repeats the file
// name.
func imgAltIsDifferent(doc *goquery.Document) []string {
	var issues []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		alt, _ := sel.Attr("alt")
		if src == "" || alt == "" {
			return
		}
		filename := baseFilename(src)
		if filename != "" && strings.EqualFold(alt, filename) {
			issues = append(issues, fmt.Sprintf("Alt text matches filename: '%s'", alt))
		}
	})
	return issues
}

func imgAltIsTooLong(doc *goquery.Document) []string {
	var issues []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt, _ := sel.Attr("alt")
		if len(alt) > altTextMaxLength {
			issues = append(issues, fmt.Sprintf("Alt text too long (%d chars): %s...", len(alt), alt[:50]))
		}
	})
	return issues
}

func imgAltNotPlaceHolder(doc *goquery.Document) []string {
	var issues []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		raw, _ := sel.Attr("alt")
		alt := strings.ToLower(strings.TrimSpace(raw))
		if alt == "" {
			return
		}
		for _, term := range placeholderAltTerms {
			if alt == term {
				issues = append(issues, fmt.Sprintf("Placeholder alt text: '%s'", alt))
				return
			}
		}
	})
	return issues
}

func imgAltNotEmptyInAnchor(doc *goquery.Document) []string {
	var issues []string
	doc.Find("a img").Each(func(_ int, sel *goquery.Selection) {
		alt, _ := sel.Attr("alt")
		if strings.TrimSpace(alt) != "" {
			return
		}
		name := "unknown"
		if src, ok := sel.Attr("src"); ok && src != "" {
			name = path.Base(src)
		}
		issues = append(issues, "Image in link missing alt text: "+name)
	})
	return issues
}

func tableDataShouldHaveTh(doc *goquery.Document) []string {
	var issues []string
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		hasTh := sel.Find("th").Length() > 0
		hasTd := sel.Find("td").Length() > 0
		if hasTd && !hasTh {
			issues = append(issues, fmt.Sprintf("Table %d has data but no headers", i+1))
		}
	})
	return issues
}

func tableThShouldHaveScope(doc *goquery.Document) []string {
	valid := map[string]bool{"row": true, "col": true, "rowgroup": true, "colgroup": true}
	var issues []string
	doc.Find("th").Each(func(_ int, sel *goquery.Selection) {
		scope, _ := sel.Attr("scope")
		if valid[scope] {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if len(text) > 30 {
			text = text[:30] + "..."
		}
		issues = append(issues, "Header missing scope: "+text)
	})
	return issues
}

func objectMustContainText(doc *goquery.Document) []string {
	var issues []string
	doc.Find("object").Each(func(i int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) != "" {
			return
		}
		typ, ok := sel.Attr("type")
		if !ok || typ == "" {
			typ = "unknown"
		}
		issues = append(issues, fmt.Sprintf("Object %d (%s) missing text content", i+1, typ))
	})
	return issues
}

func embedHasAssociatedNoEmbed(doc *goquery.Document) []string {
	var issues []string
	doc.Find("embed").Each(func(i int, sel *goquery.Selection) {
		hasNoEmbed := sel.Parent().Find("noembed").Length() > 0
		alt, _ := sel.Attr("alt")
		if hasNoEmbed || strings.TrimSpace(alt) != "" {
			return
		}
		name := "unknown"
		if src, ok := sel.Attr("src"); ok && src != "" {
			name = path.Base(src)
		}
		issues = append(issues, fmt.Sprintf("Embed %d missing alternative: %s", i+1, name))
	})
	return issues
}

func aMustContainText(doc *goquery.Document) []string {
	var issues []string
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		title, _ := sel.Attr("title")
		ariaLabel, _ := sel.Attr("aria-label")
		if text != "" || strings.TrimSpace(title) != "" || strings.TrimSpace(ariaLabel) != "" {
			return
		}
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			href = "unknown"
		} else if len(href) > 50 {
			href = href[:50] + "..."
		}
		issues = append(issues, "Link missing text: "+href)
	})
	return issues
}

// deprecatedTagFindings yields one finding per deprecated tag, named
// "<tag>IsNotUsed".
func deprecatedTagFindings(doc *goquery.Document, location string) []vast.Finding {
	findings := make([]vast.Finding, 0, len(deprecatedTags))
	for _, tag := range deprecatedTags {
		count := doc.Find(tag).Length()
		f := vast.Finding{
			Test:     tag + "IsNotUsed",
			Status:   vast.FindingPass,
			Count:    count,
			Location: location,
		}
		if count > 0 {
			f.Status = vast.FindingFail
			f.Details = fmt.Sprintf("%d %s tag(s) found", count, tag)
		}
		findings = append(findings, f)
	}
	return findings
}

func headersHaveText(doc *goquery.Document) []string {
	var issues []string
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "" {
			issues = append(issues, fmt.Sprintf("Empty %s header found", goquery.NodeName(sel)))
		}
	})
	return issues
}

// baseFilename extracts the file name without extension from a URL path.
func baseFilename(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		p = u.Path
	}
	name := path.Base(p)
	return strings.TrimSuffix(name, path.Ext(name))
}
