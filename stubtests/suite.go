package stubtests

import (
	"github.com/launchdarkly/go-http-stubs/framework"
)

func RunTestSuite(
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c)

		t.Run("matching", DoMatchingTests)
		t.Run("registration", DoRegistrationTests)
		t.Run("verification", DoVerificationTests)
		t.Run("routing", DoRoutingTests)
	})
}
