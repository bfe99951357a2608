// SPDX-License-Identifier: Apache-2.0
package machine

import "fmt"

// ValidationError reports a required credential field left empty after
// prompting. It aborts provisioning before anything is written.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is empty; provisioning needs a full identity because signing configuration depends on it", e.Field)
}
