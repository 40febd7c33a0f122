package kvio_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/dwcacheck/internal/io/kvio"
)

var _ = Describe("Kvio", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "kvio")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("saves and returns values", func() {
		kv, err := kvio.New(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(kv.Open()).To(Succeed())
		defer kv.Close()

		Expect(kv.SetValue([]byte("k"), []byte("v"))).To(Succeed())
		val, err := kv.GetValue([]byte("k"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(val)).To(Equal("v"))

		val, err = kv.GetValue([]byte("missing"))
		Expect(err).ToNot(HaveOccurred())
		Expect(val).To(BeNil())
	})

	It("starts every run with an empty store", func() {
		kv, err := kvio.New(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(kv.Open()).To(Succeed())
		Expect(kv.SetValue([]byte("k"), []byte("v"))).To(Succeed())
		Expect(kv.Close()).To(Succeed())

		kv, err = kvio.New(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(kv.Open()).To(Succeed())
		defer kv.Close()
		val, err := kv.GetValue([]byte("k"))
		Expect(err).ToNot(HaveOccurred())
		Expect(val).To(BeNil())
	})

	It("fails to read a closed store", func() {
		kv, err := kvio.New(filepath.Join(dir, "sub"))
		Expect(err).ToNot(HaveOccurred())
		_, err = kv.GetValue([]byte("k"))
		Expect(err).To(HaveOccurred())
	})
})
