// Package io reads organization trees from JSON documents and writes them back.
//
// # JSON Format
//
// The input is the response of an organization directory query:
//
//	{
//	  "data": {
//	    "organisationEntity": {
//	      "id": "T3JnOjE=",
//	      "name": "Bundesbeauftragter für den Datenschutz",
//	      "shortName": null,
//	      "children": {"edges": [{"node": { ...entity... }}]},
//	      "reverseClaims": {"edges": [{"node": {
//	        "claimType": {"name": "headOf"},
//	        "entity": {"position": "Leiterin", "name": "Erika Muster"}
//	      }}]}
//	    }
//	  }
//	}
//
// Both "children" and "reverseClaims" are connection objects whose edges wrap
// the actual records. A plain JSON array of records is accepted as well, and
// null or a missing key means empty.
//
// # Entity Fields
//
// Required:
//   - id: unique, non-empty string
//   - name: non-empty display name; ", " separates the lines of long names
//
// Optional:
//   - shortName: abbreviation shown in bold above the name
//   - children, reverseClaims: see above
//
// # Errors
//
// [ReadJSON] returns an error with code MALFORMED_INPUT when the document is
// not valid JSON or has no data.organisationEntity, and MISSING_FIELD when an
// entity lacks id or name. The message names the offending entity by its
// path, e.g. "organisationEntity.children[2]".
//
// # Depth Limit
//
// encoding/json rejects documents nested deeper than 10000 levels. Each unit
// in the connection shape costs four levels (children, edges, edge, node),
// and two in the plain-array shape, so trees deeper than about 2500 or 5000
// units fail with MALFORMED_INPUT. Trees built in memory have no such limit.
//
// # Export
//
// [WriteJSON] writes a tree in the same document shape using plain arrays.
// The output can be read back with [ReadJSON].
package io
