package redis

import "fmt"

const (
	// KeyPrefixLink is the prefix for link keys
	KeyPrefixLink = "linkedit:link:"
	// KeyLinksOrder is the list holding link IDs in display order
	KeyLinksOrder = "linkedit:links:order"
)

// LinkKey returns the Redis key for a link by ID
func LinkKey(id string) string {
	return KeyPrefixLink + id
}

// LinksOrderKey returns the key for the ordered list of link IDs
func LinksOrderKey() string {
	return KeyLinksOrder
}

// ExtractLinkID extracts the link ID from a Redis key
func ExtractLinkID(key string) (string, error) {
	if len(key) <= len(KeyPrefixLink) || key[:len(KeyPrefixLink)] != KeyPrefixLink {
		return "", fmt.Errorf("invalid link key: %s", key)
	}
	return key[len(KeyPrefixLink):], nil
}
