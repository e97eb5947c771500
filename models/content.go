// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ContentType classifies a devotional text.
type ContentType string

const (
	ContentQuran               ContentType = "quran"
	ContentHadeethQudsi        ContentType = "hadeeth_qudsi"
	ContentHadeethNabawi       ContentType = "hadeeth_nabawi"
	ContentMorningAzkar        ContentType = "morning_azkar"
	ContentEveningAzkar        ContentType = "evening_azkar"
	ContentMorningEveningAzkar ContentType = "morning_evening_azkar"
	ContentDuaa                ContentType = "duaa"
)

// ContentExtra holds optional presentation hints. Unknown keys sent by the
// remote catalog are kept in Other.
type ContentExtra struct {
	Description string         `json:"description,omitempty"`
	Order       *int           `json:"order,omitempty"`
	Repeat      *int           `json:"repeat,omitempty"`
	Other       map[string]any `json:"-"`
}

// Content is a verse, hadeeth or dhikr synced from the remote catalog.
type Content struct {
	ID      string        `json:"id"`
	Active  bool          `json:"active"`
	Type    ContentType   `json:"type"`
	Head    string        `json:"head,omitempty"`
	Content string        `json:"content"`
	Tail    string        `json:"tail,omitempty"`
	Source  string        `json:"source,omitempty"`
	Extra   *ContentExtra `json:"extra,omitempty"`
	Version *int64        `json:"version,omitempty"`
}

// ItemID implements [Item].
func (c Content) ItemID() string {
	return c.ID
}
