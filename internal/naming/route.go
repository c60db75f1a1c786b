package naming

import (
	"strings"

	"github.com/gosimple/slug"
)

// Category is one of the six fixed top-level catalog buckets. The string
// value is the JSON key.
type Category string

const (
	Musicas   Category = "musicas"
	Peliculas Category = "peliculas"
	Series    Category = "series"
	Animes    Category = "animes"
	TV        Category = "tv"
	Otros     Category = "otros"
)

// Categories lists every category in serialization order.
var Categories = []Category{Musicas, Peliculas, Series, Animes, TV, Otros}

// routeRule maps directory-name keywords to a category. Rules are evaluated
// in order; first match wins.
type routeRule struct {
	keywords []string
	category Category
}

var routeRules = []routeRule{
	{[]string{"music", "musica"}, Musicas},
	{[]string{"pelicula"}, Peliculas},
	{[]string{"serie"}, Series},
	{[]string{"anime"}, Animes},
	{[]string{"tv"}, TV},
}

// Route selects the category for a top-level directory name. The name is
// matched both lowercased and slugified, so "Música" and "Películas HD"
// route the same as their unaccented spellings.
func Route(dirName string) Category {
	lower := strings.ToLower(dirName)
	slugged := slug.Make(dirName)
	for _, r := range routeRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) || strings.Contains(slugged, kw) {
				return r.category
			}
		}
	}
	return Otros
}
