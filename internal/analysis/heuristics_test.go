package analysis

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MatchesDateLine", func() {
	It("should match the three separator families", func() {
		Expect(MatchesDateLine("2024/03/15")).To(BeTrue())
		Expect(MatchesDateLine("2024-03-15")).To(BeTrue())
		Expect(MatchesDateLine("2024.03.15")).To(BeTrue())
		Expect(MatchesDateLine("發票日期 2024/03/15 於門市")).To(BeTrue())
	})

	It("should reject non-date lines", func() {
		Expect(MatchesDateLine("2024/3/15")).To(BeFalse())
		Expect(MatchesDateLine("24/03/15")).To(BeFalse())
		Expect(MatchesDateLine("2024/03.15")).To(BeFalse())
		Expect(MatchesDateLine("蘋果汁 x2 $90")).To(BeFalse())
		Expect(MatchesDateLine("")).To(BeFalse())
	})
})

var _ = Describe("MatchesTotalLine", func() {
	It("should match currency-marked amounts", func() {
		Expect(MatchesTotalLine("總計 NT$1280", false)).To(BeTrue())
		Expect(MatchesTotalLine("NT 360", false)).To(BeTrue())
		Expect(MatchesTotalLine("$90", false)).To(BeTrue())
		Expect(MatchesTotalLine("＄45", false)).To(BeTrue())
		Expect(MatchesTotalLine("US$12", false)).To(BeTrue())
	})

	It("should reject lines without a marked amount", func() {
		Expect(MatchesTotalLine("蘋果汁 x2", false)).To(BeFalse())
		Expect(MatchesTotalLine("總計", false)).To(BeFalse())
		Expect(MatchesTotalLine("", false)).To(BeFalse())
	})

	When("a keyword is required", func() {
		It("should demand a total keyword on the line", func() {
			Expect(MatchesTotalLine("總計 NT$1280", true)).To(BeTrue())
			Expect(MatchesTotalLine("合計 $360", true)).To(BeTrue())
			Expect(MatchesTotalLine("金額 NT$45", true)).To(BeTrue())
			Expect(MatchesTotalLine("蘋果汁 x2 $90", true)).To(BeFalse())
		})
	})
})

var _ = Describe("IsItemLine", func() {
	It("should accept CJK lines with digits", func() {
		Expect(IsItemLine("蘋果汁 x2 $90")).To(BeTrue())
		Expect(IsItemLine("御飯糰 1個 25")).To(BeTrue())
	})

	It("should reject lines missing CJK or digits", func() {
		Expect(IsItemLine("#12345")).To(BeFalse())
		Expect(IsItemLine("蘋果汁")).To(BeFalse())
		Expect(IsItemLine("apple juice x2 $90")).To(BeFalse())
	})

	It("should reject bookkeeping keyword lines", func() {
		Expect(IsItemLine("統一發票 2024/03/15")).To(BeFalse())
		Expect(IsItemLine("統編 12345678")).To(BeFalse())
		Expect(IsItemLine("總計 $90")).To(BeFalse())
		Expect(IsItemLine("全家便利商店 No.42")).To(BeFalse())
		Expect(IsItemLine("營業人 統一超商 7")).To(BeFalse())
	})
})
