//go:build ignore

//kage:unit pixels

// Reduced lens program for constrained devices: same zones and thresholds as
// the full program but no curvature, swirl or shimmer terms, and a single
// reduced chromatic pass. Swirl and shimmer uniforms are accepted so both
// programs share one uniform set.

package main

var Pointer vec2
var Viewport vec2
var Time float

var Radius float
var ClearZone float
var Chromatic float
var Prism float
var ClearPull float
var PullExponent float
var PullStrength float
var SwirlStrength float
var ChromaticStrength float
var ChromaticExponent float
var PrismStrength float
var PrismExponent float
var TintStrength float
var ShimmerStrength float

func stretch(c vec2) vec2 {
	aspect := Viewport.x / Viewport.y
	if aspect >= 1 {
		return vec2(c.x*aspect, c.y)
	}
	return vec2(c.x, c.y/aspect)
}

func unstretch(c vec2) vec2 {
	aspect := Viewport.x / Viewport.y
	if aspect >= 1 {
		return vec2(c.x/aspect, c.y)
	}
	return vec2(c.x, c.y*aspect)
}

func sampleSrc(uv vec2) vec4 {
	if uv.x < 0 || uv.x > 1 || uv.y < 0 || uv.y > 1 {
		return vec4(0)
	}
	return imageSrc0At(uv*imageSrc0Size() + imageSrc0Origin())
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := (srcPos - imageSrc0Origin()) / imageSrc0Size()
	cuv := stretch(uv)
	cpt := stretch(Pointer / Viewport)

	to := cpt - cuv
	nd := length(to) / Radius
	if nd >= 1 {
		return vec4(0)
	}

	dir := vec2(0)
	if length(to) > 0 {
		dir = normalize(to)
	}

	offset := vec2(0)
	if nd < ClearZone {
		offset = to * ClearPull * nd
	} else {
		edge := (nd - ClearZone) / (1 - ClearZone)
		offset = dir * pow(edge, PullExponent) * PullStrength * Radius
	}

	clr := sampleSrc(unstretch(cuv + offset))

	if nd > Chromatic {
		// two samples instead of three: green stays on the base coordinate
		mag := pow((nd-Chromatic)/(1-Chromatic), ChromaticExponent) * ChromaticStrength * Radius
		cr := sampleSrc(unstretch(cuv + offset + dir*mag*0.5))
		cb := sampleSrc(unstretch(cuv + offset + dir*mag))
		clr = vec4(cr.r, clr.g, cb.b, (cr.a+clr.a+cb.a)/3)
	}

	if nd > Prism {
		angle := atan2(cuv.y-cpt.y, cuv.x-cpt.x)
		w := pow((nd-Prism)/(1-Prism), PrismExponent) * PrismStrength
		spectrum := vec3(
			0.5+0.5*sin(angle*2+Time),
			0.5+0.5*sin(angle*2+Time+2.0944),
			0.5+0.5*sin(angle*2+Time+4.1888),
		)
		clr = vec4(mix(clr.rgb, spectrum*clr.a, w), clr.a)
	}

	tint := vec3(1-TintStrength*0.6, 1-TintStrength*0.2, 1)
	clr = vec4(clr.rgb*tint, clr.a)

	fade := 1 - smoothstep(0.94, 1.0, nd)
	return clr * fade
}
