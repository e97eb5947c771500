// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Item is a single synced record owned by a local collection.
// The id is stable and unique within its collection.
type Item interface {
	ItemID() string
}

// CollectionName identifies a synced collection in the local store.
type CollectionName string

const (
	// PhotosCollection holds background photos.
	PhotosCollection CollectionName = "ana-muslim-photos"
	// ContentCollection holds verses, hadeeth and azkar.
	ContentCollection CollectionName = "ana-muslim-content"
)

// String implements fmt.Stringer.
func (c CollectionName) String() string {
	return string(c)
}
