package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/gateway"
)

// BatchCmd runs every query in a file
var BatchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run the queries in a file and report the results",
	Long: `Run one query per line from a file through the gateway and engine.

Blank lines are skipped. Each query's rewrite and answer are printed, followed
by a summary. With --json only the report is written, as JSON.

Examples:
  shufa batch queries.txt
  shufa batch --raw canonical.txt
  shufa batch --json queries.txt > report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchRaw  bool
	batchJSON bool
)

func init() {
	BatchCmd.Flags().BoolVar(&batchRaw, "raw", false, "Skip the gateway and treat lines as canonical sentences")
	BatchCmd.Flags().BoolVarP(&batchJSON, "json", "j", false, "Write the report as JSON")
}

// batchResult is the record for one query line
type batchResult struct {
	Query      string  `json:"query"`
	Rewritten  string  `json:"rewritten,omitempty"`
	Answer     string  `json:"answer"`
	Status     string  `json:"status"`
	Category   string  `json:"category,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// batchReport summarizes a batch run
type batchReport struct {
	Total       int           `json:"total"`
	Successful  int           `json:"successful"`
	Greetings   int           `json:"greetings"`
	Failed      int           `json:"failed"`
	SuccessRate float64       `json:"success_rate"`
	TotalTime   float64       `json:"total_seconds"`
	AverageTime float64       `json:"average_seconds"`
	Results     []batchResult `json:"results"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	queries, err := readQueries(args[0])
	if err != nil {
		return err
	}

	st, err := setup(cmd)
	if err != nil {
		return err
	}

	rw, cleanup, err := newRewriter(st.cfg, st.kb, batchRaw)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	progress := out
	if batchJSON {
		progress = io.Discard
	}

	fmt.Fprintln(progress, banner)
	fmt.Fprintln(progress, pterm.Bold.Sprint("书法专业领域咨询系统 - 批量模式"))
	fmt.Fprintln(progress, banner)
	fmt.Fprintf(progress, "从文件 '%s' 加载了 %d 个查询\n\n", args[0], len(queries))

	session := gateway.NewSession(rw, st.engine)
	report := runQueries(cmd.Context(), progress, session, queries)

	if batchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return errors.Wrap(enc.Encode(report), "failed to encode report")
	}
	printReport(out, report)
	return nil
}

// readQueries loads non-blank, trimmed lines
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "query file %s", path)
		}
		return nil, errors.Wrapf(err, "failed to open query file %s", path)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			queries = append(queries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read query file %s", path)
	}
	return queries, nil
}

// runQueries processes each query in order, writing progress to w.
// It stops early if ctx is cancelled.
func runQueries(ctx context.Context, w io.Writer, session *gateway.Session, queries []string) batchReport {
	start := time.Now()
	report := batchReport{Results: []batchResult{}}

	for i, q := range queries {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(w, "%d. 查询: %s\n", i+1, q)

		reply := session.Process(ctx, q)
		res := batchResult{
			Query:      q,
			Rewritten:  reply.Rewritten,
			Answer:     reply.Text,
			DurationMS: float64(reply.Duration.Microseconds()) / 1000,
		}

		switch reply.Kind {
		case gateway.ReplyQuery:
			report.Successful++
			res.Status = "成功"
			res.Category = reply.Outcome.Category.String()
			fmt.Fprintf(w, "   转换结果: %s\n", reply.Rewritten)
			fmt.Fprintf(w, "   解析结果: %s\n", reply.Text)
		case gateway.ReplyGreeting:
			report.Greetings++
			res.Status = "问候/引导语句"
			fmt.Fprintf(w, "   系统回复: %s\n", reply.Text)
		case gateway.ReplyFailed:
			report.Failed++
			res.Status = "错误: " + reply.Err.Error()
			fmt.Fprintf(w, "   %s\n", pterm.Red("❌ 处理查询时出错: "+reply.Err.Error()))
		}
		fmt.Fprintln(w, separator)

		report.Results = append(report.Results, res)
	}

	report.Total = len(report.Results)
	report.TotalTime = time.Since(start).Seconds()
	if report.Total > 0 {
		report.SuccessRate = float64(report.Successful) / float64(report.Total) * 100
		report.AverageTime = report.TotalTime / float64(report.Total)
	}
	return report
}

func printReport(w io.Writer, r batchReport) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, pterm.Bold.Sprint("测试报告"))
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "总测试用例: %d\n", r.Total)
	fmt.Fprintf(w, "成功解析查询: %d\n", r.Successful)
	fmt.Fprintf(w, "问候/引导语句: %d\n", r.Greetings)
	fmt.Fprintf(w, "失败查询: %d\n", r.Failed)
	fmt.Fprintf(w, "总耗时: %.2f 秒\n", r.TotalTime)
	if r.Total > 0 {
		fmt.Fprintf(w, "平均每个查询: %.2f 秒\n", r.AverageTime)
	}

	if r.Failed > 0 {
		fmt.Fprintln(w, "\n失败的查询:")
		for _, res := range r.Results {
			if strings.HasPrefix(res.Status, "错误") {
				fmt.Fprintf(w, "  - %s: %s\n", res.Query, res.Status)
			}
		}
	}
}
