package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxPageTitleLength is the maximum length for page titles.
	// Same rationale as project names.
	MaxPageTitleLength = 255

	// MaxSlugLength is the maximum length for a single path segment.
	// Keeps individual URL segments readable and well under the path cap.
	MaxSlugLength = 100

	// MaxPagePathLength is the maximum length for full page paths.
	// Set to 500 to allow paths like "/a/b/c/d" where each segment can
	// be up to 100 characters. Longer paths indicate overly deep
	// hierarchies (anti-pattern).
	MaxPagePathLength = 500

	// MaxPageDepth is the deepest level a page can report. Pages nested
	// further than this keep their tree position but their stored depth
	// is clamped here.
	MaxPageDepth = 3

	// MaxUndoDepth caps the per-project undo stack. Older snapshots are
	// dropped once the cap is reached so a long editing session cannot
	// grow memory without bound.
	MaxUndoDepth = 50

	// MaxImportRows caps CSV and sitemap imports to keep a single import
	// request bounded.
	MaxImportRows = 5000
)
