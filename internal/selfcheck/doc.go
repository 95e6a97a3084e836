// SPDX-License-Identifier: MPL-2.0

// Package selfcheck runs seeded randomized checks of the codec's
// properties across parallel workers.
package selfcheck
