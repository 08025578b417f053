// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

/*
Package manufacturer identifies which GPS hardware vendor produced an
export file and maps the vendor's column names onto canonical fields.

Each supported vendor is a declarative Profile: an ordered list of
signature substrings used for detection plus an alias table from vendor
column names to canonical field names. Adding a vendor is a data
addition, not a control-flow change; extra profiles can be loaded from a
JSON file at startup.

Detection scores every profile by counting how many of its signatures
appear (case-insensitively, as substrings) in the file's column headers.
The highest score at or above the minimum threshold wins; ties go to the
earlier-declared profile, so more specific profiles are declared first.
When nothing scores, Detect returns Unknown, never an error — an
unrecognized file still parses, it just maps no columns.

Alias resolution is case- and punctuation-insensitive: "Total Distance
(m)", "total_distance" and "TOTAL DISTANCE" all resolve through the same
alias key. Columns with no alias are dropped from the mapping silently;
an unmapped column is not an error at this layer.
*/
package manufacturer
