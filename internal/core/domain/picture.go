package domain

// Picture is one entry of a product's ordered picture list.
// The picture with the lowest position becomes the product cover.
type Picture struct {
	// Position orders the pictures in the shop. Gaps are fine.
	Position int `json:"position" toml:"position"`

	// URL is the source the binary content is uploaded from.
	URL string `json:"url" toml:"url"`

	// Alt is the optional alt text of the picture.
	Alt string `json:"alt,omitempty" toml:"alt,omitempty"`

	// Title is the optional title of the picture.
	Title string `json:"title,omitempty" toml:"title,omitempty"`
}
