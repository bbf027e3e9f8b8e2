package app

// Page is one screen of the application.
type Page struct {
	Name    string
	Title   string
	Pattern string
	// Project pages carry the project id in their ":id" segment.
	Project bool
}

// pages is the route table. Order is match priority: the first pattern that
// fits a path wins, so literal routes must come before parameter routes of
// the same shape.
var pages = []Page{
	{Name: "home", Title: "Home", Pattern: "/"},
	{Name: "login", Title: "Sign in", Pattern: "/login"},
	{Name: "dashboard", Title: "Dashboard", Pattern: "/dashboard"},
	{Name: "projects", Title: "Projects", Pattern: "/projects"},
	{Name: "project-new", Title: "New project", Pattern: "/projects/new"},
	{Name: "project", Title: "Project", Pattern: "/projects/:id", Project: true},
	{Name: "board", Title: "Board", Pattern: "/projects/:id/board", Project: true},
	{Name: "sprints", Title: "Sprints", Pattern: "/projects/:id/sprints", Project: true},
	{Name: "gantt", Title: "Gantt", Pattern: "/projects/:id/gantt", Project: true},
	{Name: "maintenance", Title: "Maintenance", Pattern: "/projects/:id/maintenance", Project: true},
	{Name: "reports", Title: "Reports", Pattern: "/projects/:id/reports", Project: true},
	{Name: "task", Title: "Task", Pattern: "/projects/:id/tasks/:taskId", Project: true},
	{Name: "users", Title: "Users", Pattern: "/users"},
	{Name: "settings", Title: "Settings", Pattern: "/settings"},
}

// Pages returns a copy of the route table in priority order.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// Patterns returns the route patterns in priority order.
func Patterns() []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Pattern
	}
	return out
}
