// Package state holds the currently displayed photo and content.
//
// Actions are ordinary functions returning a batch of patches. A patch
// either replaces the state or computes it from the previous one; a batch
// is applied atomically and in order, then subscribers are notified.
package state
