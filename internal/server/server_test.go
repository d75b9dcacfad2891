package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	Expect(err).NotTo(HaveOccurred())
	return string(b)
}

var _ = Describe("Server", func() {
	var (
		srv     *Server
		handler http.Handler
	)

	BeforeEach(func() {
		srv = New(engine.New(engine.DefaultOptions()), GinkgoLogr)
		handler = srv.Handler()
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	decodeError := func(rec *httptest.ResponseRecorder) ErrorResponse {
		var resp ErrorResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	Describe("GET /healthz", func() {
		It("should report ok", func() {
			rec := do(http.MethodGet, "/healthz", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"status":"ok"`))
		})
	})

	Describe("POST /api/v1/production", func() {
		It("should solve the furniture workshop case", func() {
			rec := do(http.MethodPost, "/api/v1/production", mustJSON(model.DefaultProductionInput()))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

			var resp ProductionResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Solution.OperatingPoint).To(Equal(model.UnitPoint{X: 0, Y: 80}))
			Expect(resp.Solution.PlanProfit).To(Equal(24000000.0))
			Expect(resp.Solution.Binding.Kind).To(Equal(model.BindingResource))
			Expect(resp.Solution.Binding.Name).To(Equal("Teak wood"))
			Expect(resp.Region).To(HaveLen(3))

			Expect(testutil.ToFloat64(srv.Metrics().Requests.WithLabelValues(ModelProduction, "ok"))).To(Equal(1.0))
		})

		It("should reject malformed JSON", func() {
			rec := do(http.MethodPost, "/api/v1/production", `{"objective":`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Error).To(HavePrefix("invalid JSON body"))
			Expect(testutil.ToFloat64(srv.Metrics().Requests.WithLabelValues(ModelProduction, "invalid"))).To(Equal(1.0))
		})

		It("should reject unknown fields", func() {
			rec := do(http.MethodPost, "/api/v1/production", `{"objective":{"cx":1,"cy":1},"resources":[],"colour":"red"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Error).To(ContainSubstring("colour"))
		})

		It("should reject trailing data", func() {
			body := mustJSON(model.DefaultProductionInput()) + `{}`
			rec := do(http.MethodPost, "/api/v1/production", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should list every validation problem", func() {
			in := model.DefaultProductionInput()
			in.Objective.CX = -1
			in.Resources[1].Capacity = -5
			rec := do(http.MethodPost, "/api/v1/production", mustJSON(in))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			resp := decodeError(rec)
			Expect(resp.Error).To(Equal("invalid input"))
			Expect(resp.Details).To(HaveLen(2))
			Expect(resp.Details[1]).To(ContainSubstring("Teak wood.capacity"))
		})

		It("should reject a problem without resources", func() {
			rec := do(http.MethodPost, "/api/v1/production", `{"objective":{"cx":1,"cy":1}}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Details).To(ConsistOf(ContainSubstring("at least one resource")))
		})

		It("should only accept POST", func() {
			rec := do(http.MethodGet, "/api/v1/production", "")
			Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
		})
	})

	Describe("POST /api/v1/inventory", func() {
		It("should compute the EOQ plan with chart samples", func() {
			rec := do(http.MethodPost, "/api/v1/inventory", mustJSON(model.DefaultInventoryInput()))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp InventoryResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Plan.EOQ).To(BeNumerically("~", 219.089, 1e-3))
			Expect(resp.Plan.Policy).To(Equal(model.PolicyBalanced))
			Expect(resp.CostCurve).To(HaveLen(costCurveSamples))
			Expect(resp.Cycle).To(HaveLen(cycleSamples))
		})

		It("should reject negative demand", func() {
			rec := do(http.MethodPost, "/api/v1/inventory", `{"annual_demand":-1,"order_cost":1,"holding_cost":1}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/v1/queue", func() {
		It("should report a stable but critical car wash", func() {
			rec := do(http.MethodPost, "/api/v1/queue", `{"arrival_rate":30,"service_rate":35}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var m model.QueueMetrics
			Expect(json.Unmarshal(rec.Body.Bytes(), &m)).To(Succeed())
			Expect(m.Status).To(Equal(model.QueueStable))
			Expect(m.Load).To(Equal(model.LoadCritical))
			Expect(m.InSystem).To(BeNumerically("~", 6, 1e-9))
		})

		It("should report instability as a status, not an error", func() {
			rec := do(http.MethodPost, "/api/v1/queue", `{"arrival_rate":40,"service_rate":35}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var m model.QueueMetrics
			Expect(json.Unmarshal(rec.Body.Bytes(), &m)).To(Succeed())
			Expect(m.Status).To(Equal(model.QueueUnstable))
			Expect(m.InSystem).To(BeZero())
		})
	})

	Describe("POST /api/v1/reliability", func() {
		It("should find the weakest stage", func() {
			rec := do(http.MethodPost, "/api/v1/reliability", mustJSON(model.DefaultReliabilityInput()))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var rep model.ReliabilityReport
			Expect(json.Unmarshal(rec.Body.Bytes(), &rep)).To(Succeed())
			Expect(rep.WeakestName).To(Equal("Painting"))
			Expect(rep.Risk).To(Equal(model.RiskMedium))
		})

		It("should reject probabilities above one", func() {
			rec := do(http.MethodPost, "/api/v1/reliability", `{"stages":[{"name":"Oven","reliability":1.2}]}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Details).To(ConsistOf(ContainSubstring("Oven")))
		})
	})

	Describe("POST /api/v1/compare", func() {
		It("should rank the default what-if scenarios", func() {
			body := mustJSON(CompareRequest{Base: model.DefaultProductionInput()})
			rec := do(http.MethodPost, "/api/v1/compare", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp CompareResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Results).To(HaveLen(5))
			Expect(resp.Results[0].Scenario.Name).To(Equal("Current Plan"))
			Expect(resp.Ranking).To(HaveLen(4))
			Expect(resp.Ranking[0]).To(HavePrefix("Teak wood +10%"))
			Expect(resp.Ranking[3]).To(HavePrefix("Labor hours +10%"))
		})

		It("should compare explicit alternatives against the base", func() {
			bigger := model.DefaultProductionInput()
			bigger.Resources[1].Capacity = 150
			body := mustJSON(CompareRequest{
				Base:      model.DefaultProductionInput(),
				Scenarios: []engine.ComparisonScenario{{Name: "More wood", Input: bigger}},
			})
			rec := do(http.MethodPost, "/api/v1/compare", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp CompareResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Results).To(HaveLen(2))
			Expect(resp.Results[1].ObjectiveDelta).To(BeNumerically("~", 6000000, 1e-6))
			Expect(resp.Ranking).To(Equal([]string{"More wood"}))
		})

		It("should reject an invalid alternative", func() {
			bad := model.DefaultProductionInput()
			bad.Resources = nil
			body := mustJSON(CompareRequest{
				Base:      model.DefaultProductionInput(),
				Scenarios: []engine.ComparisonScenario{{Name: "Empty", Input: bad}},
			})
			rec := do(http.MethodPost, "/api/v1/compare", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Details).To(ConsistOf(ContainSubstring(`scenario "Empty"`)))
		})
	})

	Describe("GET /metrics", func() {
		It("should expose the request counter", func() {
			do(http.MethodPost, "/api/v1/queue", `{"arrival_rate":1,"service_rate":2}`)

			rec := do(http.MethodGet, "/metrics", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`industrimath_requests_total{model="queue",status="ok"} 1`))
			Expect(rec.Body.String()).To(ContainSubstring("industrimath_solve_duration_seconds"))
		})
	})

	Describe("Serve", func() {
		It("should shut down when the context is cancelled", func() {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() {
				done <- srv.Serve(ctx, ln)
			}()

			url := "http://" + ln.Addr().String() + "/healthz"
			Eventually(func() (int, error) {
				resp, err := http.Get(url)
				if err != nil {
					return 0, err
				}
				defer resp.Body.Close()
				_, _ = io.Copy(io.Discard, resp.Body)
				return resp.StatusCode, nil
			}, 2*time.Second, 20*time.Millisecond).Should(Equal(http.StatusOK))

			cancel()
			Eventually(done, 2*time.Second).Should(Receive(BeNil()))
		})
	})
})
