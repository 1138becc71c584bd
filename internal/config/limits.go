package config

const (
	// MaxProjectTitleLength is the maximum length for project titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectTitleLength = 255

	// MaxProjectDescriptionLength caps project descriptions. Descriptions
	// are card text on the board, not documents.
	MaxProjectDescriptionLength = 2000
)
