package mock

import (
	"github.com/courseaudit/vast"
)

var _ vast.AccessibilityChecker = (*AccessibilityChecker)(nil)

// AccessibilityChecker is a mock implementation of vast.AccessibilityChecker.
type AccessibilityChecker struct {
	CheckFn func(html, location string) ([]vast.Finding, error)
}

func (c *AccessibilityChecker) Check(html, location string) ([]vast.Finding, error) {
	return c.CheckFn(html, location)
}
