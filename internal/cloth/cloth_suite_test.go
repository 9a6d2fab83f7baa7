package cloth_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestClothSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cloth Suite")
}
