// Package all wires every built-in answer-store backend into the answers
// factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories with the answers package. After that, the following kinds
// can be opened through answers.Open:
//
//   - "sqlite"   (surveygen/internal/answers/sqlite)
//   - "postgres" (surveygen/internal/answers/postgres)
//   - "mssql"    (surveygen/internal/answers/mssql)
//
// A binary that only needs one backend can blank-import that subpackage
// directly instead of this one.
package all

import (
	_ "surveygen/internal/answers/mssql"
	_ "surveygen/internal/answers/postgres"
	_ "surveygen/internal/answers/sqlite"
)
