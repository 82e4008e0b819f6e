// Package extract reads the district and school directory extract and turns
// it into validated rows ready for seeding.
//
// The extract is a JSON document with two arrays:
//
//	{
//	  "districts": [{"leaid": "3904676", "name": "...", "state_id": "OH-046763", ...}],
//	  "schools":   [{"ncessch": "390467600001", "leaid": "3904676", "name": "...", ...}]
//	}
//
// Decode never writes anything. Validation reports every problem in the
// document at once so a bad extract can be fixed in one pass.
package extract
