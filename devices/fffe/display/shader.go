package display

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragment = `
#version 420

uniform vec4 foreground;
uniform vec4 background;

layout (binding = 0) uniform sampler2D pixels;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Lit pixels are stored as 0xff in the red channel.
    float lit = step(0.5, texture(pixels, fragTexCoord).r);
    outputColor = mix(background, foreground, lit);
}
`
