// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PhotoPosition is the anchor a background photo is panned from or to.
type PhotoPosition string

const (
	PositionTopRight    PhotoPosition = "top_right"
	PositionTop         PhotoPosition = "top"
	PositionTopLeft     PhotoPosition = "top_left"
	PositionCenterRight PhotoPosition = "center_right"
	PositionCenter      PhotoPosition = "center"
	PositionCenterLeft  PhotoPosition = "center_left"
	PositionBottomRight PhotoPosition = "bottom_right"
	PositionBottom      PhotoPosition = "bottom"
	PositionBottomLeft  PhotoPosition = "bottom_left"
)

// PhotoPan describes the pan animation of a background photo.
type PhotoPan struct {
	From PhotoPosition `json:"from"`
	To   PhotoPosition `json:"to"`
}

// LocalizedName carries an Arabic and an English spelling of a name.
type LocalizedName struct {
	AR string `json:"ar"`
	EN string `json:"en"`
}

// PhotoAuthor credits the photographer.
type PhotoAuthor struct {
	Name *LocalizedName `json:"name,omitempty"`
	URL  string         `json:"url,omitempty"`
}

// GeoPosition is a latitude/longitude pair.
type GeoPosition struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// PhotoLocation describes where a photo was taken.
type PhotoLocation struct {
	Name     *LocalizedName `json:"name,omitempty"`
	Position *GeoPosition   `json:"position,omitempty"`
}

// Photo is a background photo synced from the remote catalog.
//
// Cached is the only field mutated locally: it is set once the asset has
// been handed to the asset cache worker.
type Photo struct {
	ID         string         `json:"id"`
	Cached     bool           `json:"cached"`
	Active     bool           `json:"active"`
	Likes      *int           `json:"likes,omitempty"`
	Position   *PhotoPan      `json:"position,omitempty"`
	Author     *PhotoAuthor   `json:"author,omitempty"`
	Colors     []string       `json:"colors"`
	Location   *PhotoLocation `json:"location,omitempty"`
	Preview    string         `json:"preview"`
	Src        string         `json:"src"`
	UnsplashID string         `json:"unsplashId,omitempty"`
	URL        string         `json:"url"`
	Version    *int64         `json:"version,omitempty"`
}

// ItemID implements [Item].
func (p Photo) ItemID() string {
	return p.ID
}
