// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// UI is the interactive front of the client. It blocks until the user quits
// or ctx is cancelled.
type UI interface {
	Run(ctx context.Context) error
}
