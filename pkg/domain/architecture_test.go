package domain

import (
	"testing"

	"missioncontrol/testutil"
)

// TestDomainImportsStdlibOnly keeps the domain layer free of implementation
// and third-party packages.
func TestDomainImportsStdlibOnly(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.AnyOf(testutil.InternalImportForbidden, testutil.ThirdPartyImportForbidden),
		"pkg/domain must depend only on the standard library")
}
