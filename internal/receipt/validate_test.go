package receipt

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// violationFields returns the field paths of a validation error
func violationFields(err error) []string {
	verr, ok := err.(*ValidationError)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

var _ = Describe("Validate", func() {
	var (
		sub     *Submission
		now     time.Time
		receipt *Receipt
		err     error
	)

	BeforeEach(func() {
		sub = targetSubmission()
		now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	JustBeforeEach(func() {
		receipt, err = Validate(sub, now)
	})

	When("the submission is valid", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep the retailer", func() {
			Expect(receipt.Retailer).To(Equal("Target"))
		})

		It("should combine purchase date and time", func() {
			Expect(receipt.PurchasedAt).To(Equal(time.Date(2022, 1, 1, 13, 1, 0, 0, time.UTC)))
		})

		It("should convert prices to cents", func() {
			Expect(receipt.Items).To(Equal([]Item{
				{ShortDescription: "Mountain Dew 12PK", Price: 649},
				{ShortDescription: "Emils Cheese Pizza", Price: 1225},
			}))
			Expect(receipt.Total).To(Equal(Cents(1874)))
		})
	})

	When("the submission is nil", func() {
		BeforeEach(func() {
			sub = nil
		})

		It("returns a validation error", func() {
			Expect(IsValidationError(err)).To(BeTrue())
		})
	})

	DescribeTable("retailer",
		func(retailer string, valid bool) {
			sub.Retailer = retailer
			_, err := Validate(sub, now)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(violationFields(err)).To(ContainElement("retailer"))
			}
		},
		Entry("plain name", "Target", true),
		Entry("ampersand and spaces", "M&M Corner Market", true),
		Entry("hyphen and underscore", "Wal-Mart_2", true),
		Entry("empty", "", false),
		Entry("only whitespace", "   ", false),
		Entry("punctuation", "Target!", false),
		Entry("apostrophe", "Trader Joe's", false),
	)

	DescribeTable("item description",
		func(description string, valid bool) {
			sub.Items[0].ShortDescription = description
			_, err := Validate(sub, now)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(violationFields(err)).To(ContainElement("items[0].shortDescription"))
			}
		},
		Entry("words and digits", "Mountain Dew 12PK", true),
		Entry("hyphen", "Klarbrunn 12-PK", true),
		Entry("empty", "", false),
		Entry("only whitespace", "   ", false),
		Entry("ampersand", "Salt & Pepper", false),
	)

	DescribeTable("item price",
		func(price string, valid bool) {
			sub.Items = []SubmittedItem{{ShortDescription: "Item", Price: price}}
			sub.Total = price
			_, err := Validate(sub, now)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(violationFields(err)).To(ContainElement("items[0].price"))
			}
		},
		Entry("two decimals", "10.00", true),
		Entry("zero", "0.00", true),
		Entry("no decimals", "10", false),
		Entry("one decimal", "10.0", false),
		Entry("three decimals", "10.000", false),
		Entry("negative", "-5.00", false),
		Entry("non-numeric", "abc", false),
		Entry("empty", "", false),
	)

	DescribeTable("purchase date",
		func(date string, valid bool) {
			sub.PurchaseDate = date
			_, err := Validate(sub, now)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(violationFields(err)).To(ContainElement("purchaseDate"))
			}
		},
		Entry("leap day in a leap year", "2024-02-29", true),
		Entry("end of month", "2023-04-30", true),
		Entry("leap day in a common year", "2023-02-29", false),
		Entry("month 13", "2022-13-01", false),
		Entry("day 32", "2022-01-32", false),
		Entry("day 31 in a 30 day month", "2023-04-31", false),
		Entry("future day", "2027-01-22", false),
		Entry("wrong layout", "01/01/2022", false),
		Entry("missing zero padding", "2022-1-1", false),
		Entry("empty", "", false),
	)

	DescribeTable("purchase time",
		func(clock string, valid bool) {
			sub.PurchaseTime = clock
			_, err := Validate(sub, now)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(violationFields(err)).To(ContainElement("purchaseTime"))
			}
		},
		Entry("midnight", "00:00", true),
		Entry("last minute", "23:59", true),
		Entry("hour 24", "24:00", false),
		Entry("minute 60", "12:60", false),
		Entry("twelve hour clock", "1:01 PM", false),
		Entry("missing zero padding", "9:05", false),
		Entry("seconds", "13:01:00", false),
		Entry("empty", "", false),
	)

	When("the purchase happens later today", func() {
		BeforeEach(func() {
			sub.PurchaseDate = "2024-06-01"
			sub.PurchaseTime = "12:01"
		})

		It("rejects the purchase date", func() {
			Expect(violationFields(err)).To(ConsistOf("purchaseDate"))
		})
	})

	When("the purchase happens at the current minute", func() {
		BeforeEach(func() {
			sub.PurchaseDate = "2024-06-01"
			sub.PurchaseTime = "12:00"
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})
	})

	DescribeTable("total",
		func(total string, prices []string, valid bool) {
			sub.Items = nil
			for _, p := range prices {
				sub.Items = append(sub.Items, SubmittedItem{ShortDescription: "Item A", Price: p})
			}
			sub.Total = total
			_, err := Validate(sub, now)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(violationFields(err)).To(ContainElement("total"))
			}
		},
		Entry("single item", "10.00", []string{"10.00"}, true),
		Entry("two items", "5.00", []string{"2.50", "2.50"}, true),
		Entry("sums that drift in floating point", "0.30", []string{"0.10", "0.20"}, true),
		Entry("off by a cent", "10.01", []string{"10.00"}, false),
		Entry("not a number", "INVALID", []string{"10.00"}, false),
	)

	When("there are no items", func() {
		BeforeEach(func() {
			sub.Items = nil
		})

		It("reports the missing items", func() {
			Expect(violationFields(err)).To(ContainElement("items"))
		})

		It("does not compare the total", func() {
			Expect(violationFields(err)).NotTo(ContainElement("total"))
		})
	})

	When("an item price is invalid", func() {
		BeforeEach(func() {
			sub.Items[1].Price = "12.2"
		})

		It("does not compare the total", func() {
			Expect(violationFields(err)).To(ConsistOf("items[1].price"))
		})
	})

	When("several fields are invalid", func() {
		BeforeEach(func() {
			sub.Retailer = "Target!"
			sub.PurchaseDate = "2023-02-29"
			sub.PurchaseTime = "24:00"
			sub.Items[0].ShortDescription = ""
			sub.Total = "18.75"
		})

		It("reports every violation together", func() {
			Expect(violationFields(err)).To(ConsistOf(
				"retailer",
				"items[0].shortDescription",
				"purchaseDate",
				"purchaseTime",
				"total",
			))
		})

		It("does not return a receipt", func() {
			Expect(receipt).To(BeNil())
		})

		It("describes every violation in the message", func() {
			Expect(err.Error()).To(ContainSubstring("retailer: contains invalid characters"))
			Expect(err.Error()).To(ContainSubstring("purchaseTime"))
		})
	})

	When("the clock is in another time zone", func() {
		BeforeEach(func() {
			loc := time.FixedZone("UTC-5", -5*60*60)
			now = time.Date(2022, 1, 1, 13, 30, 0, 0, loc)
		})

		It("interprets the purchase in the clock's zone", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.PurchasedAt.Location()).To(Equal(now.Location()))
			Expect(receipt.PurchasedAt.Hour()).To(Equal(13))
		})
	})
})
