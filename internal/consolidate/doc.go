// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

/*
Package consolidate reduces the normalized rows of one recording session
into a single authoritative ConsolidatedSession.

Vendor exports mix two kinds of rows for the same session: per-period
rows (halves, quarters, drill segments) and a whole-session aggregate
row. Summing both double-counts every summable metric, which is the
correctness bug this package exists to prevent.

Classification decides which kind each row is from its period label.
The label vocabularies are maintained multilingual keyword sets, and the
precedence rule is explicit: a period keyword beats a total keyword, so
"Total 1st Half" is a within-period cumulative figure, not a session
total. Ambiguous or empty labels default to period, the conservative
choice — a mislabelled period row merely contributes to a sum, while a
mislabelled total row would silently discard every other row's distance.

Reduction then takes summable metrics verbatim from the session-total
row when one exists, or sums the period rows when none does — never
both. Max-type metrics are always the maximum across all rows including
the total row, so a session's max speed can never be lower than one of
its halves.
*/
package consolidate
