package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/juev/spendreport/internal/config"
)

type groupMatcher struct {
	pattern *regexp.Regexp
	group   string
}

// Classifier maps a counterparty to its group. Patterns are tried in order
// against the lowercased party and the first match wins.
type Classifier struct {
	matchers []groupMatcher
}

func NewClassifier(mappings []config.Mapping) (*Classifier, error) {
	c := &Classifier{matchers: make([]groupMatcher, 0, len(mappings))}
	for _, m := range mappings {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, &config.ConfigError{Err: fmt.Errorf("group pattern %q: %w", m.Pattern, err)}
		}
		c.matchers = append(c.matchers, groupMatcher{pattern: re, group: m.Target})
	}
	return c, nil
}

// Classify returns the group for party. Without a matching pattern the
// lowercased party itself is returned and ok is false.
func (c *Classifier) Classify(party string) (group string, ok bool) {
	key := strings.ToLower(party)
	for _, m := range c.matchers {
		if m.pattern.MatchString(key) {
			return m.group, true
		}
	}
	return key, false
}

func (c *Classifier) Len() int {
	return len(c.matchers)
}
