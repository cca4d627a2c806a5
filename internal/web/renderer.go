// Package web serves the analyzer form and the profile summary endpoint.
package web

import (
	"encoding/json"
	"io"

	"github.com/ghsum/ghsum/internal/domain"
)

// Renderer handles rendering responses to HTTP clients.
type Renderer interface {
	RenderIndex(w io.Writer) error
	RenderHealth(w io.Writer) error
	RenderSummaryJSON(w io.Writer, summary *domain.ProfileSummary) error
	RenderErrorJSON(w io.Writer, message string) error
}

// HTMLRenderer implements Renderer. The page HTML is embedded directly,
// no external templates needed.
type HTMLRenderer struct{}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// summaryResponse is the wire shape of a successful /analyze response,
// consumed by the page script.
type summaryResponse struct {
	Username     string          `json:"username"`
	Name         string          `json:"name,omitempty"`
	RepoCount    int             `json:"repo_count"`
	Followers    int             `json:"followers"`
	Following    int             `json:"following"`
	TotalStars   int             `json:"total_stars"`
	TopLanguages []languageEntry `json:"top_languages"`
	CreatedAt    string          `json:"created_at"`
	LastActive   string          `json:"last_active"`
}

type languageEntry struct {
	Language     string `json:"language"`
	Repositories int    `json:"repositories"`
}

// errorResponse is the wire shape of a failed /analyze response.
type errorResponse struct {
	Error string `json:"error"`
}

const dateLayout = "2006-01-02"

func (r *HTMLRenderer) RenderSummaryJSON(w io.Writer, summary *domain.ProfileSummary) error {
	languages := make([]languageEntry, 0, len(summary.TopLanguages))
	for _, lang := range summary.TopLanguages {
		languages = append(languages, languageEntry{Language: lang.Language, Repositories: lang.Repositories})
	}
	return json.NewEncoder(w).Encode(summaryResponse{
		Username:     summary.Username,
		Name:         summary.Name,
		RepoCount:    summary.PublicRepos,
		Followers:    summary.Followers,
		Following:    summary.Following,
		TotalStars:   summary.TotalStars,
		TopLanguages: languages,
		CreatedAt:    summary.CreatedAt.Format(dateLayout),
		LastActive:   summary.LastActiveAt.Format(dateLayout),
	})
}

func (r *HTMLRenderer) RenderErrorJSON(w io.Writer, message string) error {
	return json.NewEncoder(w).Encode(errorResponse{Error: message})
}

func (r *HTMLRenderer) RenderHealth(w io.Writer) error {
	_, err := w.Write([]byte(`{"status":"ok"}`))
	return err
}

func (r *HTMLRenderer) RenderIndex(w io.Writer) error {
	_, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
	<title>GitHub Profile Analyzer</title>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<style>
		body { font-family: system-ui, -apple-system, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; color: #333; }
		.container { max-width: 800px; margin: 0 auto; }
		.card { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 20px; }
		label { display: block; margin-bottom: 8px; font-weight: 600; }
		input[type=text] { width: 100%; box-sizing: border-box; padding: 10px; border: 1px solid #e0e0e0; border-radius: 4px; font-size: 16px; margin-bottom: 12px; }
		button { background: #0066cc; color: white; border: none; padding: 10px 20px; border-radius: 4px; font-size: 16px; cursor: pointer; }
		button:hover { opacity: 0.9; }
		.alert { padding: 12px 16px; border-radius: 4px; margin-top: 20px; }
		.alert-info { background: #e7f1ff; color: #084298; }
		.alert-danger { background: #f8d7da; color: #842029; }
		.result-section { margin-top: 20px; }
		.result-section p { margin: 6px 0; }
	</style>
</head>
<body>
	<div class="container">
		<h1>GitHub Profile Analyzer</h1>
		<div class="card">
			<form id="analyzeForm">
				<label for="github_url">GitHub Profile URL or username</label>
				<input type="text" id="github_url" name="github_url"
					   placeholder="https://github.com/username" required>
				<button type="submit">Analyze Profile</button>
			</form>
		</div>
		<div id="results" class="result-section"></div>
	</div>
	<script>
		document.getElementById('analyzeForm').addEventListener('submit', async (e) => {
			e.preventDefault();
			const url = document.getElementById('github_url').value;
			const resultsDiv = document.getElementById('results');
			resultsDiv.innerHTML = '<div class="alert alert-info">Analyzing profile...</div>';

			try {
				const response = await fetch('/analyze', {
					method: 'POST',
					headers: {'Content-Type': 'application/json'},
					body: JSON.stringify({github_url: url})
				});
				const data = await response.json();

				if (data.error) {
					resultsDiv.innerHTML = '<div class="alert alert-danger"></div>';
					resultsDiv.firstChild.textContent = data.error;
				} else {
					const languages = data.top_languages
						.map((l) => l.language + ' (' + l.repositories + ')')
						.join(', ') || 'none';
					resultsDiv.innerHTML = ` + "`" + `
						<div class="card">
							<h2>Profile Analysis Results</h2>
							<p><strong>Username:</strong> ${data.username}</p>
							<p><strong>Repositories:</strong> ${data.repo_count}</p>
							<p><strong>Followers:</strong> ${data.followers}</p>
							<p><strong>Following:</strong> ${data.following}</p>
							<p><strong>Total Stars:</strong> ${data.total_stars}</p>
							<p><strong>Most Used Languages:</strong> ${languages}</p>
							<p><strong>Account Created:</strong> ${data.created_at}</p>
							<p><strong>Last Active:</strong> ${data.last_active}</p>
						</div>
					` + "`" + `;
				}
			} catch (error) {
				resultsDiv.innerHTML = '<div class="alert alert-danger">An error occurred while analyzing the profile.</div>';
			}
		});
	</script>
</body>
</html>`))
	return err
}
