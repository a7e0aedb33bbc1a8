// SPDX-License-Identifier: BSD-3-Clause

// Package phase implements the two-phase gain schedule of the boiler
// controller as a state machine. Cold start uses aggressive gains to shorten
// time-to-ready; once the boiler first crosses the target temperature the
// machine switches to the gentler warm gains and stays there. The transition
// is one-way by construction — temperature dips after warm-up must not bring
// the aggressive gains back.
package phase
