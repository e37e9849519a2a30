package classify

// Signature pattern tables. All matching is case-insensitive substring
// matching against the lowercased user-agent (or host). The tables are
// package-level constants in spirit: constructed once, never mutated.
//
// Order matters within each table: the first match wins and supplies
// the agent name.

// agentSignature maps user-agent tokens to a canonical agent name.
// A signature matches when every token is present in the user-agent.
type agentSignature struct {
	Tokens []string
	Agent  string
}

// codingAgentSignatures identify AI code assistants fetching docs.
var codingAgentSignatures = []agentSignature{
	{Tokens: []string{"claude-code"}, Agent: "claude-code"},
	{Tokens: []string{"claudecode"}, Agent: "claude-code"},
	{Tokens: []string{"codex"}, Agent: "codex"},
	{Tokens: []string{"opencode"}, Agent: "opencode"},
}

// browsingAgentSignatures identify conversational AI products fetching
// pages live on behalf of a user. Recorded, but filtered out of headline
// AI metrics.
var browsingAgentSignatures = []agentSignature{
	{Tokens: []string{"chatgpt-user"}, Agent: "chatgpt-user"},
	{Tokens: []string{"claude/1.0"}, Agent: "claude-computer-use"},
	{Tokens: []string{"claude", "compatible"}, Agent: "claude-computer-use"},
	{Tokens: []string{"perplexity-user"}, Agent: "perplexity-comet"},
}

// botSignatures are known crawler, monitoring, and HTTP-client tokens.
// The matching token itself becomes the agent name.
var botSignatures = []string{
	// search engines
	"googlebot", "bingbot", "yandexbot", "baiduspider", "duckduckbot", "slurp",
	// social previews
	"facebookexternalhit", "linkedinbot", "twitterbot",
	// seo
	"applebot", "semrushbot", "ahrefsbot", "mj12bot", "dotbot", "petalbot", "bytespider",
	// ai crawlers (training/indexing, not browsing agents)
	"gptbot", "claudebot", "anthropic-ai", "ccbot", "cohere-ai", "perplexitybot",
	// monitoring
	"pingdom", "uptimerobot", "statuscake", "site24x7", "newrelic", "datadog", "checkly", "freshping",
	// infra
	"vercel-healthcheck", "vercel-edge-functions",
	// generic http clients
	"wget", "curl", "httpie", "python-requests", "go-http-client",
	"scrapy", "httpclient", "java/", "okhttp", "axios", "node-fetch", "undici",
}

// previewHostSignatures mark local and ephemeral-deployment hostnames
// that never carry real end-user traffic.
var previewHostSignatures = []string{
	".vercel.app",
	".netlify.app",
	".pages.dev",
	"localhost",
	"127.0.0.1",
}
