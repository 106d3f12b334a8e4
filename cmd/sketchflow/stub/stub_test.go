package stubcmder

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/sketchflow/cmd/sketchflow/settings"
	"github.com/papercomputeco/sketchflow/pkg/convert"
)

var _ = Describe("Stub Command", func() {
	var (
		stdout *gbytes.Buffer
		cancel context.CancelFunc
		done   chan error
	)

	start := func(args ...string) string {
		root := &cobra.Command{Use: "sketchflow", SilenceUsage: true, SilenceErrors: true}
		settings.AddPersistentFlags(root)
		root.AddCommand(NewStubCmd())

		stdout = gbytes.NewBuffer()
		root.SetOut(stdout)
		root.SetErr(gbytes.NewBuffer())
		root.SetArgs(append([]string{"stub"}, args...))

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() { done <- root.ExecuteContext(ctx) }()

		Eventually(stdout, 5*time.Second).Should(gbytes.Say("listening on"))
		m := regexp.MustCompile(`http://\S+/convert`).FindString(string(stdout.Contents()))
		Expect(m).NotTo(BeEmpty())
		return m
	}

	AfterEach(func() {
		if cancel != nil {
			cancel()
		}
	})

	It("serves conversions until the context is cancelled", func() {
		url := start("--listen", "127.0.0.1:0")

		client := convert.NewClient(url)
		resp, err := client.Convert(context.Background(), convert.Request{Text: "one. two"})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.BPMN).To(ContainSubstring(`name="two"`))

		health, err := http.Get(strings.TrimSuffix(url, "/convert") + "/health")
		Expect(err).NotTo(HaveOccurred())
		defer health.Body.Close()
		var status map[string]string
		Expect(json.NewDecoder(health.Body).Decode(&status)).To(Succeed())
		Expect(status).To(HaveKeyWithValue("status", "ok"))

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})

	It("fails when the address cannot be bound", func() {
		root := &cobra.Command{Use: "sketchflow", SilenceUsage: true, SilenceErrors: true}
		settings.AddPersistentFlags(root)
		root.AddCommand(NewStubCmd())
		root.SetOut(gbytes.NewBuffer())
		root.SetErr(gbytes.NewBuffer())
		root.SetArgs([]string{"stub", "--listen", "not-an-address"})

		Expect(root.Execute()).To(MatchError(ContainSubstring("could not listen")))
	})
})
