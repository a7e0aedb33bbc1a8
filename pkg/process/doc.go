// SPDX-License-Identifier: BSD-3-Clause

// Package process bridges the service contract and the oversight
// supervision tree.
package process
