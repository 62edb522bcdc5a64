// Package reports holds the fixed catalog of read-only queries over the
// artifact tables and the code that runs them.
package reports

import (
	"github.com/ARQAP/museum-insights/src/apperr"
)

// Param names the user-supplied value a report needs, if any.
type Param string

const (
	NoParam         Param = ""
	ArtifactIDParam Param = "artifactId"
	DepartmentParam Param = "department"
)

// Report is one entry of the catalog. Parameterized reports carry exactly
// one ? placeholder, filled with a bound argument at run time.
type Report struct {
	ID    int    `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Param Param  `json:"param,omitempty"`
	SQL   string `json:"-"`
}

var catalog = []Report{
	{ID: 1, Slug: "byzantine-11th-century", Title: "List all artifacts from the 11th century belonging to Byzantine culture",
		SQL: "SELECT * FROM artifact_metadata WHERE century = '11th century' AND culture = 'Byzantine'"},
	{ID: 2, Slug: "unique-cultures", Title: "What are the unique cultures represented in the artifacts?",
		SQL: "SELECT DISTINCT culture FROM artifact_metadata WHERE culture IS NOT NULL"},
	{ID: 3, Slug: "archaic-period", Title: "List all artifacts from the Archaic Period",
		SQL: "SELECT * FROM artifact_metadata WHERE period = 'Archaic'"},
	{ID: 4, Slug: "titles-by-accession-year", Title: "List artifact titles ordered by accession year descending",
		SQL: "SELECT title, accessionyear FROM artifact_metadata ORDER BY accessionyear DESC"},
	{ID: 5, Slug: "artifacts-per-department", Title: "How many artifacts are there per department?",
		SQL: "SELECT department, COUNT(*) AS artifact_count FROM artifact_metadata GROUP BY department"},
	{ID: 6, Slug: "more-than-one-image", Title: "Which artifacts have more than 1 image?",
		SQL: "SELECT m.title FROM artifact_metadata m JOIN artifact_media md ON m.id = md.objectid WHERE md.imagecount > 1"},
	{ID: 7, Slug: "average-rank", Title: "What is the average rank of all artifacts?",
		SQL: "SELECT AVG(rank_value) AS avg_rank FROM artifact_media"},
	{ID: 8, Slug: "more-colors-than-media", Title: "Which artifacts have a higher colorcount than mediacount?",
		SQL: "SELECT m.title FROM artifact_metadata m JOIN artifact_media md ON m.id = md.objectid WHERE md.colorcount > md.mediacount"},
	{ID: 9, Slug: "accessioned-1500-1600", Title: "List all artifacts created between 1500 and 1600",
		SQL: "SELECT * FROM artifact_metadata WHERE accessionyear BETWEEN 1500 AND 1600"},
	{ID: 10, Slug: "byzantine-hues", Title: "List artifact titles and hues for Byzantine culture",
		SQL: "SELECT m.title, c.hue FROM artifact_metadata m JOIN artifact_colors c ON m.id = c.objectid WHERE m.culture = 'Byzantine'"},
	{ID: 11, Slug: "titles-with-hues", Title: "List each artifact title with its associated hues",
		SQL: "SELECT m.title, c.hue FROM artifact_metadata m JOIN artifact_colors c ON m.id = c.objectid"},
	{ID: 12, Slug: "ranks-with-period", Title: "Get artifact titles, cultures, and media ranks where the period is not null",
		SQL: "SELECT m.title, m.culture, md.rank_value FROM artifact_metadata m JOIN artifact_media md ON m.id = md.objectid WHERE m.period IS NOT NULL"},
	{ID: 13, Slug: "top-ranked-grey", Title: "Find artifact titles ranked in the top 10 that include the hue 'Grey'",
		SQL: "SELECT m.title, md.rank_value FROM artifact_metadata m JOIN artifact_media md ON m.id = md.objectid JOIN artifact_colors c ON m.id = c.objectid WHERE c.hue = 'Grey' ORDER BY md.rank_value DESC LIMIT 10"},
	{ID: 14, Slug: "classification-media-summary", Title: "How many artifacts exist per classification, and average media count",
		SQL: "SELECT m.classification, COUNT(*) AS artifact_count, AVG(md.mediacount) AS avg_media FROM artifact_metadata m JOIN artifact_media md ON m.id = md.objectid GROUP BY m.classification"},
	{ID: 15, Slug: "no-media-files", Title: "How many artifacts have no media files?",
		SQL: "SELECT COUNT(*) AS artifact_count FROM artifact_media WHERE mediacount = 0"},
	{ID: 16, Slug: "distinct-hues", Title: "What are all distinct hues used?",
		SQL: "SELECT DISTINCT hue FROM artifact_colors"},
	{ID: 17, Slug: "top-colors", Title: "Top 5 most used colors by frequency",
		SQL: "SELECT color, COUNT(*) AS frequency FROM artifact_colors GROUP BY color ORDER BY frequency DESC LIMIT 5"},
	{ID: 18, Slug: "hue-coverage", Title: "Average coverage percentage for each hue",
		SQL: "SELECT hue, AVG(percent) AS avg_percent FROM artifact_colors GROUP BY hue"},
	{ID: 19, Slug: "colors-for-artifact", Title: "List all colors used for a given artifact ID", Param: ArtifactIDParam,
		SQL: "SELECT color FROM artifact_colors WHERE objectid = ?"},
	{ID: 20, Slug: "color-entries", Title: "Total number of color entries",
		SQL: "SELECT COUNT(*) AS color_entries FROM artifact_colors"},
	{ID: 21, Slug: "purchased", Title: "Show artifacts where accession method contains 'purchase'",
		SQL: "SELECT * FROM artifact_metadata WHERE LOWER(accessionmethod) LIKE '%purchase%'"},
	{ID: 22, Slug: "by-department", Title: "List all artifacts from a specific department", Param: DepartmentParam,
		SQL: "SELECT * FROM artifact_metadata WHERE department = ?"},
	{ID: 23, Slug: "no-description", Title: "Find artifacts that have no description",
		SQL: "SELECT * FROM artifact_metadata WHERE description IS NULL"},
	{ID: 24, Slug: "by-object-id", Title: "Show artifacts ordered by object ID",
		SQL: "SELECT * FROM artifact_metadata ORDER BY id"},
	{ID: 25, Slug: "with-period", Title: "Count artifacts with a non-null period",
		SQL: "SELECT COUNT(*) AS artifact_count FROM artifact_metadata WHERE period IS NOT NULL"},
}

// Catalog returns a copy of all reports ordered by ID.
func Catalog() []Report {
	out := make([]Report, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a report by its number.
func Lookup(id int) (Report, error) {
	if id < 1 || id > len(catalog) {
		return Report{}, apperr.Invalid("reports.lookup", "unknown report %d", id)
	}
	return catalog[id-1], nil
}
