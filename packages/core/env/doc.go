// Package env resolves {{name}} and {{$ENV_VAR}} references in suite files.
//
// Variables come from several layers, lowest precedence first:
//   - the project config's variables block
//   - the selected config environment
//   - an optional .env file
//   - the suite file's own variables
//   - --var overrides from the command line
//
// References that cannot be resolved are left verbatim and reported through
// the resolver's WarnFunc.
package env
