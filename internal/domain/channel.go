package domain

// Channel is a marketplace or social destination a listing can be published to.
type Channel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// channels is the fixed catalog of publish destinations.
var channels = []Channel{
	{ID: "amazon", Name: "Amazon", IconURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/4/4a/Amazon_icon.svg/512px-Amazon_icon.svg.png"},
	{ID: "flipkart", Name: "Flipkart", IconURL: "https://uxwing.com/wp-content/themes/uxwing/download/brands-and-social-media/flipkart-icon.png"},
	{ID: "myntra", Name: "Myntra", IconURL: "https://upload.wikimedia.org/wikipedia/commons/b/bc/Myntra_Logo.png"},
	{ID: "meesho", Name: "Meesho", IconURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/8/80/Meesho_Logo_Full.png/512px-Meesho_Logo_Full.png"},
	{ID: "ajio", Name: "Ajio", IconURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c5/Ajio_Logo.svg/512px-Ajio_Logo.svg.png"},
	{ID: "etsy", Name: "Etsy", IconURL: "https://cdn-icons-png.flaticon.com/512/825/825528.png"},
}

// Channels returns the catalog of publish destinations in display order.
func Channels() []Channel {
	out := make([]Channel, len(channels))
	copy(out, channels)
	return out
}

// ChannelByID looks up a channel in the catalog.
func ChannelByID(id string) (Channel, bool) {
	for _, c := range channels {
		if c.ID == id {
			return c, true
		}
	}
	return Channel{}, false
}

// IsValidChannel reports whether the given id is in the catalog.
func IsValidChannel(id string) bool {
	_, ok := ChannelByID(id)
	return ok
}
