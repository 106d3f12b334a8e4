package convertcmder

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/sketchflow/cmd/sketchflow/settings"
	"github.com/papercomputeco/sketchflow/pkg/convert"
	"github.com/papercomputeco/sketchflow/stub"
)

var _ = Describe("Convert Command", func() {
	var (
		tmpDir   string
		endpoint string
		cleanup  func()
	)

	startServer := func() (string, func()) {
		srv := stub.New(stub.Config{ListenAddr: ":0"}, zap.NewNop())

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())

		go func() {
			_ = srv.RunWithListener(listener)
		}()

		return "http://" + listener.Addr().String() + "/convert", func() {
			srv.Shutdown()
		}
	}

	newCmd := func(args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
		root := &cobra.Command{Use: "sketchflow", SilenceUsage: true, SilenceErrors: true}
		settings.AddPersistentFlags(root)
		root.AddCommand(NewConvertCmd())

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		root.SetOut(stdout)
		root.SetErr(stderr)
		root.SetArgs(append([]string{"convert", "--endpoint", endpoint}, args...))
		return root, stdout, stderr
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "sketchflow-convert-test-*")
		Expect(err).NotTo(HaveOccurred())
		endpoint, cleanup = startServer()
	})

	AfterEach(func() {
		cleanup()
		os.RemoveAll(tmpDir)
	})

	It("converts a description given as arguments", func() {
		cmd, stdout, _ := newCmd("ثبت درخواست.", "بررسی درخواست")
		Expect(cmd.Execute()).To(Succeed())

		Expect(stdout.String()).To(ContainSubstring("ثبت درخواست"))
		Expect(stdout.String()).To(ContainSubstring("بررسی درخواست"))
	})

	It("reads the description from stdin", func() {
		cmd, stdout, _ := newCmd()
		cmd.SetIn(strings.NewReader("receive order then ship order"))
		Expect(cmd.Execute()).To(Succeed())

		Expect(stdout.String()).To(ContainSubstring("receive order"))
		Expect(stdout.String()).To(ContainSubstring("ship order"))
	})

	It("reads --file and writes the markup to --output", func() {
		in := filepath.Join(tmpDir, "process.txt")
		out := filepath.Join(tmpDir, "process.bpmn")
		Expect(os.WriteFile(in, []byte("first step. second step"), 0o644)).To(Succeed())

		cmd, _, stderr := newCmd("--file", in, "--output", out)
		Expect(cmd.Execute()).To(Succeed())
		Expect(stderr.String()).To(ContainSubstring("Wrote " + out))

		markup, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(markup)).To(ContainSubstring(`<bpmn:task id="Activity_2" name="second step"/>`))
	})

	It("reports blank descriptions without calling the service", func() {
		cmd, stdout, _ := newCmd("   ")
		err := cmd.Execute()
		Expect(err).To(MatchError(convert.MsgEmptyInput))
		Expect(stdout.String()).To(BeEmpty())
	})

	It("shows the service message when the service rejects the text", func() {
		cmd, _, _ := newCmd(". ؛")
		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("امکان ساخت نمودار وجود ندارد"))
	})

	It("falls back to the generic message when the service is unreachable", func() {
		cleanup()
		cmd, _, _ := newCmd("some text")
		Expect(cmd.Execute()).To(MatchError(convert.MsgConversionFailed))
	})

	It("rejects --watch without --file", func() {
		cmd, _, _ := newCmd("--watch", "text")
		Expect(cmd.Execute()).To(MatchError(ContainSubstring("--watch needs --file")))
	})

	It("rejects arguments together with --file", func() {
		cmd, _, _ := newCmd("--file", "x.txt", "text")
		Expect(cmd.Execute()).To(MatchError(ContainSubstring("not both")))
	})

	It("converts again when the watched file changes", func() {
		in := filepath.Join(tmpDir, "process.txt")
		Expect(os.WriteFile(in, []byte("draft step"), 0o644)).To(Succeed())

		root := &cobra.Command{Use: "sketchflow", SilenceUsage: true, SilenceErrors: true}
		settings.AddPersistentFlags(root)
		root.AddCommand(NewConvertCmd())
		stdout := gbytes.NewBuffer()
		root.SetOut(stdout)
		root.SetErr(gbytes.NewBuffer())
		root.SetArgs([]string{"convert", "--endpoint", endpoint, "--file", in, "--watch"})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- root.ExecuteContext(ctx) }()

		Eventually(stdout, 5*time.Second).Should(gbytes.Say("draft step"))

		// give the watcher time to register the directory
		time.Sleep(200 * time.Millisecond)
		Expect(os.WriteFile(in, []byte("final step"), 0o644)).To(Succeed())
		Eventually(stdout, 5*time.Second).Should(gbytes.Say("final step"))

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})
})
