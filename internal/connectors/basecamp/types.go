package basecamp

// Wire types for the Basecamp classic JSON API. Only the fields the
// pipeline consumes are decoded.

// Person is a Basecamp account reference embedded in records.
type Person struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// projectRecord is one entry of /api/v1/projects.json.
type projectRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TodoSummary is one entry of a todos.json page. It exists only to drive
// the follow-up detail fetch via its URL.
type TodoSummary struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// Todo is the full to-do record returned by a summary's detail URL.
type Todo struct {
	ID        int64     `json:"id"`
	Creator   Person    `json:"creator"`
	Content   string    `json:"content"`
	AppURL    string    `json:"app_url"`
	UpdatedAt string    `json:"updated_at"`
	Comments  []Comment `json:"comments"`
}

// Comment is one entry of a to-do's comment thread.
type Comment struct {
	ID        int64  `json:"id"`
	Creator   Person `json:"creator"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updated_at"`
}
