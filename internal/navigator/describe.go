package navigator

import (
	"fmt"

	"fixturectl/internal/results"
)

// NodeStatus summarizes a node in one word.
func NodeStatus(node *results.Node) string {
	switch p := node.Payload().(type) {
	case *results.Outcome:
		if p.Ignored {
			return "IGNORED"
		}
		return string(p.Status)
	case *results.FixtureSummary:
		switch {
		case p.Ignored:
			return "IGNORED"
		case len(p.Errors()) > 0:
			return "BROKEN"
		case p.Failed > 0:
			return string(results.StatusFailed)
		default:
			return string(results.StatusPassed)
		}
	case *results.AssemblySummary:
		if p.Healthy() {
			return string(results.StatusPassed)
		}
		return string(results.StatusFailed)
	}
	return "UNKNOWN"
}

func nodeErrors(node *results.Node) []error {
	switch p := node.Payload().(type) {
	case *results.Outcome:
		return p.Errors
	case *results.FixtureSummary:
		return p.Errors()
	}
	return nil
}

// Describe renders the current node at the current detail level as plain lines.
func (n *Navigator) Describe() []string {
	return Describe(n.current, n.detail)
}

// Describe renders node at the given detail level.
func Describe(node *results.Node, level DetailLevel) []string {
	lines := []string{fmt.Sprintf("%s [%s] %s", node.Kind(), NodeStatus(node), node.Label())}

	switch p := node.Payload().(type) {
	case *results.AssemblySummary:
		lines = append(lines, fmt.Sprintf("fixtures: %d (broken %d)  passed: %d  failed: %d  not run: %d",
			p.Fixtures, p.Broken, p.Passed, p.Failed, p.NotRun))
	case *results.FixtureSummary:
		if p.Description != "" {
			lines = append(lines, p.Description)
		}
		lines = append(lines, fmt.Sprintf("run: %s  passed: %d  failed: %d  not run: %d",
			p.RunID, p.Passed, p.Failed, p.NotRun))
		if p.Ignored && p.IgnoreReason != "" {
			lines = append(lines, "ignored: "+p.IgnoreReason)
		}
	case *results.Outcome:
		if p.Description != "" {
			lines = append(lines, p.Description)
		}
		if p.Ignored && p.IgnoreReason != "" {
			lines = append(lines, "ignored: "+p.IgnoreReason)
		}
		if d := p.Duration(); d > 0 {
			lines = append(lines, fmt.Sprintf("duration: %s", d))
		}
	}

	if level >= DetailErrorTypes {
		for i, err := range nodeErrors(node) {
			line := fmt.Sprintf("error %d: %s", i+1, results.ErrorType(err))
			if level >= DetailFull {
				line += ": " + err.Error()
			}
			lines = append(lines, line)
		}
	} else if errs := nodeErrors(node); len(errs) > 0 {
		lines = append(lines, fmt.Sprintf("errors: %d", len(errs)))
	}

	for i, c := range node.Children() {
		lines = append(lines, fmt.Sprintf("  %d. [%s] %s", i, NodeStatus(c), c.Label()))
	}
	return lines
}
