package panel_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/panel"
)

var _ = Describe("Panel", func() {
	var p *panel.Panel

	BeforeEach(func() {
		p = panel.NewDefault()
	})

	It("starts from the bench defaults", func() {
		s := p.Snapshot()
		Expect(s.Voltage).To(Equal(400.0))
		Expect(s.Frequency).To(Equal(32.3))
		Expect(s.Angle).To(BeZero())
		Expect(s.Speed).To(Equal(915))
		Expect(s.Ratio.String()).To(Equal("12.38"))
	})

	Describe("inputs", func() {
		It("shows the placeholder ratio and zero speed at 0 Hz", func() {
			p.SetFrequency(0)
			Expect(p.Speed()).To(BeZero())
			Expect(p.Ratio().Defined).To(BeFalse())
			Expect(p.Ratio().String()).To(Equal("—"))
		})

		It("computes the ratio for zero voltage at full frequency", func() {
			p.SetVoltage(0)
			p.SetFrequency(50)
			Expect(p.Ratio().String()).To(Equal("0.00"))
			Expect(p.Speed()).To(Equal(1416))
		})

		It("clamps values outside the control range", func() {
			p.SetVoltage(1000)
			p.SetFrequency(-3)
			Expect(p.Voltage()).To(Equal(motor.MaxVoltage))
			Expect(p.Frequency()).To(Equal(motor.MinFrequency))
		})

		It("is idempotent for repeated voltage changes", func() {
			p.SetVoltage(230)
			first := p.Snapshot()
			p.SetVoltage(230)
			Expect(p.Snapshot()).To(Equal(first))
		})

		It("never serves stale derived values", func() {
			p.SetFrequency(25)
			Expect(p.Speed()).To(Equal(motor.ComputeSpeed(25)))
			p.SetVoltage(100)
			Expect(p.Ratio().String()).To(Equal("4.00"))
		})
	})

	Describe("observers", func() {
		It("notifies subscribers on every mutation until cancelled", func() {
			var got []panel.Snapshot
			cancel := p.Subscribe(func(s panel.Snapshot) { got = append(got, s) })

			p.SetVoltage(200)
			p.SetFrequency(20)
			Expect(got).To(HaveLen(2))
			Expect(got[1].Ratio.String()).To(Equal("10.00"))

			cancel()
			cancel()
			p.SetVoltage(100)
			Expect(got).To(HaveLen(2))
		})

		It("notifies on rotor motion but not on a standing rotor", func() {
			count := 0
			p.Subscribe(func(panel.Snapshot) { count++ })
			anim := p.Mount(motor.StepFixed)

			anim.Tick(time.Now())
			Expect(count).To(Equal(1))

			p.SetFrequency(0)
			count = 0
			anim.Tick(time.Now())
			Expect(count).To(BeZero())
		})
	})

	Describe("animation", func() {
		var anim *panel.Animation

		BeforeEach(func() {
			p.SetFrequency(10)
			anim = p.Mount(motor.StepFixed)
		})

		It("starts running", func() {
			Expect(anim.State()).To(Equal(panel.Running))
			Expect(anim.Generation()).To(Equal(uint64(1)))
		})

		It("advances by a fixed increment per frame", func() {
			now := time.Now()
			anim.Tick(now)
			anim.Tick(now.Add(100 * time.Millisecond))
			Expect(p.Angle()).To(BeNumerically("~", 12, 1e-9))
			Expect(anim.Frames()).To(Equal(uint64(2)))
		})

		It("uses the latest frequency on the next frame", func() {
			anim.Tick(time.Now())
			p.SetFrequency(20)
			anim.Tick(time.Now())
			Expect(p.Angle()).To(BeNumerically("~", 18, 1e-9))
		})

		It("does not rotate at zero frequency", func() {
			p.SetFrequency(0)
			for i := 0; i < 10; i++ {
				anim.Tick(time.Now())
			}
			Expect(p.Angle()).To(BeZero())
		})

		It("stops exactly once and ignores later frames", func() {
			anim.Tick(time.Now())
			Expect(p.Unmount()).To(BeTrue())
			Expect(p.Unmount()).To(BeFalse())
			Expect(anim.Stop()).To(BeFalse())
			Expect(anim.State()).To(Equal(panel.Stopped))

			angle := p.Angle()
			for i := 0; i < 5; i++ {
				Expect(anim.Tick(time.Now())).To(BeFalse())
			}
			Expect(p.Angle()).To(Equal(angle))
		})

		It("stops the previous animation when remounted", func() {
			next := p.Mount(motor.StepFixed)
			Expect(anim.State()).To(Equal(panel.Stopped))
			Expect(next.State()).To(Equal(panel.Running))
			Expect(next.Generation()).To(Equal(uint64(2)))
			Expect(p.Animation()).To(BeIdenticalTo(next))
		})
	})

	Describe("elapsed step mode", func() {
		It("scales the advance by the measured frame interval", func() {
			p.SetFrequency(10)
			anim := p.Mount(motor.StepElapsed)
			start := time.Now()

			anim.Tick(start)
			Expect(p.Angle()).To(BeZero())

			anim.Tick(start.Add(time.Second / 30))
			Expect(p.Angle()).To(BeNumerically("~", 12, 1e-6))
		})
	})
})
