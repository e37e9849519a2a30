// Package classify maps request metadata (user-agent, accept header,
// host) to a visitor category: human, bot, browsing agent, or coding
// agent. Classification is a pure function over static pattern tables.
package classify

import (
	"strings"

	"docsight/internal/domain"
)

// IsPageView reports whether the accept header indicates a document
// fetch (HTML, markdown, or plain text). Asset, API, and XHR requests
// fail this gate and must be skipped entirely: no events recorded.
func IsPageView(accept string) bool {
	a := strings.ToLower(accept)
	return strings.Contains(a, "text/html") ||
		strings.Contains(a, "text/markdown") ||
		strings.Contains(a, "text/plain")
}

// Classify determines the visitor category for a request. It is total:
// every input yields a result. Rules apply in a fixed priority order;
// later tiers rely on earlier ones having been exhausted, so do not
// reorder them.
//
//  1. explicit coding-agent user-agent signature
//  2. explicit browsing-agent user-agent signature
//  3. accept header negotiates a machine-readable document
//  4. bot/crawler user-agent signature
//  5. preview/development host
//  6. human
func Classify(userAgent, acceptHeader, host string) domain.Classification {
	ua := strings.ToLower(userAgent)

	// 1. Explicit coding agents (by user-agent)
	if agent, ok := matchSignature(ua, codingAgentSignatures); ok {
		return domain.Classification{Category: domain.CategoryCodingAgent, Agent: agent, Filtered: false}
	}

	// 2. Browsing agents (by user-agent)
	if agent, ok := matchSignature(ua, browsingAgentSignatures); ok {
		return domain.Classification{Category: domain.CategoryBrowsingAgent, Agent: agent, Filtered: true}
	}

	// 3. Machine-readable accept = coding agent. Catches generic HTTP
	// clients (axios, node-fetch, curl) driven by coding tools, so this
	// tier must run before the bot table.
	if wantsMachineReadable(acceptHeader) {
		return domain.Classification{Category: domain.CategoryCodingAgent, Agent: domain.AgentUnknownCodingAgent, Filtered: false}
	}

	// 4. Bots and crawlers
	if name, ok := matchBot(ua); ok {
		return domain.Classification{Category: domain.CategoryBot, Agent: name, Filtered: true}
	}

	// 5. Preview hosts never carry real end-user traffic
	if matchPreviewHost(host) {
		return domain.Classification{Category: domain.CategoryHuman, Agent: domain.AgentBrowser, Filtered: true}
	}

	// 6. Human
	return domain.Classification{Category: domain.CategoryHuman, Agent: domain.AgentBrowser, Filtered: false}
}

// wantsMachineReadable reports whether the accept header negotiates a
// non-HTML document format: markdown, or plain text without HTML as an
// alternative. Browsers always offer text/html, so its absence alongside
// text/plain signals an automated consumer.
func wantsMachineReadable(accept string) bool {
	a := strings.ToLower(accept)
	if strings.Contains(a, "text/markdown") {
		return true
	}
	return strings.Contains(a, "text/plain") && !strings.Contains(a, "text/html")
}

// matchSignature returns the canonical agent name of the first signature
// whose tokens all occur in the user-agent.
func matchSignature(ua string, sigs []agentSignature) (string, bool) {
	for _, sig := range sigs {
		matched := true
		for _, tok := range sig.Tokens {
			if !strings.Contains(ua, tok) {
				matched = false
				break
			}
		}
		if matched {
			return sig.Agent, true
		}
	}
	return "", false
}

// matchBot returns the first matching bot token as the agent name.
func matchBot(ua string) (string, bool) {
	for _, tok := range botSignatures {
		if strings.Contains(ua, tok) {
			return tok, true
		}
	}
	return "", false
}

func matchPreviewHost(host string) bool {
	h := strings.ToLower(host)
	for _, tok := range previewHostSignatures {
		if strings.Contains(h, tok) {
			return true
		}
	}
	return false
}
