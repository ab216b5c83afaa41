package analysis

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Extract (food mode)", func() {
	When("the payload has more than five labels", func() {
		var summary Summary

		BeforeEach(func() {
			labels := []LabelAnnotation{
				{Description: "Apple", Score: 0.98},
				{Description: "Fruit", Score: 0.95},
				{Description: "Food", Score: 0.91},
				{Description: "Produce", Score: 0.88},
				{Description: "Natural foods", Score: 0.84},
				{Description: "Plant", Score: 0.80},
				{Description: "Rose family", Score: 0.77},
			}
			summary = Extract(ModeFood, NewLabelPayload(labels))
		})

		It("should keep only the first five, in provider order", func() {
			Expect(summary.Food).NotTo(BeNil())
			Expect(summary.Food.Labels).To(HaveLen(5))
			Expect(summary.Food.Labels[0].Description).To(Equal("Apple"))
			Expect(summary.Food.Labels[4].Description).To(Equal("Natural foods"))
		})

		It("should not populate the invoice branch", func() {
			Expect(summary.Invoice).To(BeNil())
		})
	})

	When("the payload has fewer than five labels", func() {
		It("should return all of them", func() {
			payload := NewLabelPayload([]LabelAnnotation{
				{Description: "Banana", Score: 0.9},
				{Description: "Fruit", Score: 0.6},
			})
			summary := Extract(ModeFood, payload)
			Expect(summary.Food.Labels).To(HaveLen(2))
		})
	})

	It("should scale scores to percent rounded to one decimal", func() {
		payload := NewLabelPayload([]LabelAnnotation{
			{Description: "Apple", Score: 0.87654},
			{Description: "Fruit", Score: 0.5},
			{Description: "Food", Score: 1.0},
			{Description: "Produce", Score: 0.005},
		})
		summary := Extract(ModeFood, payload)
		Expect(summary.Food.Labels[0].Confidence).To(Equal(87.7))
		Expect(summary.Food.Labels[1].Confidence).To(Equal(50.0))
		Expect(summary.Food.Labels[2].Confidence).To(Equal(100.0))
		Expect(summary.Food.Labels[3].Confidence).To(Equal(0.5))
	})

	When("the payload is empty", func() {
		It("should return an empty summary without error", func() {
			summary := Extract(ModeFood, NewLabelPayload(nil))
			Expect(summary.Food).NotTo(BeNil())
			Expect(summary.Food.Labels).To(BeEmpty())
		})
	})
})

var _ = Describe("Extract (invoice mode)", func() {
	receiptText := func(lines ...string) Payload {
		return NewTextPayload([]TextBlock{{Text: strings.Join(lines, "\n")}})
	}

	When("a line carries a date", func() {
		It("should return the whole first matching line", func() {
			payload := receiptText(
				"全聯福利中心",
				"發票日期 2024/03/15 於門市",
				"2024/04/01 下次優惠",
			)
			summary := Extract(ModeInvoice, payload)
			Expect(summary.Invoice.Date).To(Equal("發票日期 2024/03/15 於門市"))
		})

		It("should accept dot and dash separator families", func() {
			Expect(Extract(ModeInvoice, receiptText("日期 2024.03.15")).Invoice.Date).To(Equal("日期 2024.03.15"))
			Expect(Extract(ModeInvoice, receiptText("日期 2024-03-15")).Invoice.Date).To(Equal("日期 2024-03-15"))
		})

		It("should reject mixed separators", func() {
			summary := Extract(ModeInvoice, receiptText("日期 2024/03-15"))
			Expect(summary.Invoice.Date).To(BeEmpty())
		})
	})

	When("no line carries a date", func() {
		It("should leave the date absent", func() {
			payload := receiptText("全聯福利中心", "蘋果汁 x2 $90")
			summary := Extract(ModeInvoice, payload)
			Expect(summary.Invoice.Date).To(BeEmpty())
		})
	})

	When("a line carries a currency amount", func() {
		It("should return the whole first matching line", func() {
			payload := receiptText("全聯福利中心", "總計 NT$1280")
			summary := Extract(ModeInvoice, payload)
			Expect(summary.Invoice.Total).To(Equal("總計 NT$1280"))
		})

		It("should pick the first monetary line by default, even if it is not the total", func() {
			payload := receiptText("蘋果汁 x2 $90", "總計 $90")
			summary := Extract(ModeInvoice, payload)
			Expect(summary.Invoice.Total).To(Equal("蘋果汁 x2 $90"))
		})

		It("should pick the keyword line when TotalRequiresKeyword is set", func() {
			payload := receiptText("蘋果汁 x2 $90", "總計 $90")
			summary := ExtractWithOptions(ModeInvoice, payload, Options{TotalRequiresKeyword: true})
			Expect(summary.Invoice.Total).To(Equal("總計 $90"))
		})
	})

	When("filtering item lines", func() {
		It("should keep only CJK+digit lines without bookkeeping keywords", func() {
			payload := receiptText(
				"統一發票 2024/03/15",
				"蘋果汁 x2 $90",
				"#12345",
				"總計 $90",
			)
			summary := Extract(ModeInvoice, payload)
			Expect(summary.Invoice.Items).To(Equal([]string{"蘋果汁 x2 $90"}))
		})

		It("should preserve order and keep duplicates", func() {
			payload := receiptText("蘋果汁 x2 $90", "御飯糰 1個 $25", "蘋果汁 x2 $90")
			summary := Extract(ModeInvoice, payload)
			Expect(summary.Invoice.Items).To(Equal([]string{
				"蘋果汁 x2 $90",
				"御飯糰 1個 $25",
				"蘋果汁 x2 $90",
			}))
		})
	})

	It("should let a single line satisfy several scans at once", func() {
		// The three scans are independent, not a partition: this line is the
		// date match and the total match while being excluded from items.
		payload := receiptText("發票日期 2024/03/15 總計 NT$360")
		summary := Extract(ModeInvoice, payload)
		Expect(summary.Invoice.Date).To(Equal("發票日期 2024/03/15 總計 NT$360"))
		Expect(summary.Invoice.Total).To(Equal("發票日期 2024/03/15 總計 NT$360"))
		Expect(summary.Invoice.Items).To(BeEmpty())
	})

	When("the payload has no text blocks", func() {
		It("should return an all-empty summary without error", func() {
			summary := Extract(ModeInvoice, NewTextPayload(nil))
			Expect(summary.Invoice.Date).To(BeEmpty())
			Expect(summary.Invoice.Total).To(BeEmpty())
			Expect(summary.Invoice.Items).To(BeEmpty())
			Expect(summary.Invoice.Items).NotTo(BeNil())
		})
	})

	When("block 0 is blank lines only", func() {
		It("should return an all-empty summary", func() {
			payload := NewTextPayload([]TextBlock{{Text: "\n   \n\t\n"}})
			summary := Extract(ModeInvoice, payload)
			Expect(summary.Invoice.Date).To(BeEmpty())
			Expect(summary.Invoice.Total).To(BeEmpty())
			Expect(summary.Invoice.Items).To(BeEmpty())
		})
	})

	It("should be idempotent for identical inputs", func() {
		payload := receiptText("統一發票 2024/03/15", "蘋果汁 x2 $90", "總計 NT$115")
		first := Extract(ModeInvoice, payload)
		second := Extract(ModeInvoice, payload)
		Expect(second).To(Equal(first))
	})
})

var _ = Describe("Snippet", func() {
	It("should use the top label for label payloads", func() {
		payload := NewLabelPayload([]LabelAnnotation{{Description: "Apple", Score: 0.9}})
		Expect(Snippet(payload)).To(Equal("Apple"))
	})

	It("should return empty for an empty label payload", func() {
		Expect(Snippet(NewLabelPayload(nil))).To(BeEmpty())
	})

	It("should truncate long text payloads to 40 runes", func() {
		long := strings.Repeat("統", 60)
		payload := NewTextPayload([]TextBlock{{Text: long}})
		Expect(Snippet(payload)).To(Equal(strings.Repeat("統", 40)))
	})

	It("should keep short text payloads intact", func() {
		payload := NewTextPayload([]TextBlock{{Text: "全聯福利中心\n蘋果汁"}})
		Expect(Snippet(payload)).To(Equal("全聯福利中心\n蘋果汁"))
	})
})
