// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the new-tab core: the local store, the sync
// services, the state holders, the background workers and the dashboard.
//
// One-shot commands use the same App without starting the dashboard.
package client
