package models

// CachePhotoMessage asks the asset cache to store a photo locally.
const CachePhotoMessage = "cache-photo"

// AssetMessage is a fire-and-forget directive for the asset cache, such as
// ("cache-photo", url).
type AssetMessage struct {
	Type string
	URL  string
}
